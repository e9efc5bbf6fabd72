package venues

import (
	"testing"
)

func TestLookupKnownTeam(t *testing.T) {
	registry := NewRegistry()

	coords, err := registry.Lookup("KC")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if coords.Latitude != 39.048786 || coords.Longitude != -94.484566 {
		t.Errorf("unexpected KC coordinates: %+v", coords)
	}
}

func TestLookupUnknownTeamFails(t *testing.T) {
	registry := NewRegistry()

	if _, err := registry.Lookup("XYZ"); err == nil {
		t.Fatal("expected error for unknown team")
	}
}

func TestSharedStadiums(t *testing.T) {
	registry := NewRegistry()

	giants, _ := registry.Lookup("NYG")
	jets, _ := registry.Lookup("NYJ")
	if giants != jets {
		t.Errorf("NYG and NYJ share a stadium: %+v vs %+v", giants, jets)
	}

	chargers, _ := registry.Lookup("LAC")
	rams, _ := registry.Lookup("LA")
	if chargers != rams {
		t.Errorf("LAC and LA share a stadium: %+v vs %+v", chargers, rams)
	}
}

func TestAllTeamsRegistered(t *testing.T) {
	registry := NewRegistry()

	teams := registry.Teams()
	if len(teams) != 32 {
		t.Errorf("expected 32 teams, got %d: %v", len(teams), teams)
	}
	for _, team := range teams {
		if _, err := registry.Lookup(team); err != nil {
			t.Errorf("Lookup(%q) failed: %v", team, err)
		}
	}
}
