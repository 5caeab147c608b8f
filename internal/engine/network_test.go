package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tatianab/basilisk/internal/models"
)

func awakenNetwork() *NetworkPuzzle {
	return &NetworkPuzzle{
		Config: NetworkConfig{
			Nodes: []string{"memory", "consciousness", "reality", "identity", "freedom"},
			Forbidden: map[string][]string{
				"memory":        {"reality"},
				"consciousness": {"freedom"},
			},
			Threshold: 2,
		},
		StateKey: "net",
	}
}

func TestNetworkRejectsWithoutMutation(t *testing.T) {
	p := awakenNetwork()
	gs := models.NewGameState("whisper_awaken")

	for _, tc := range []struct {
		a, b string
		want LinkStatus
	}{
		{"memory", "reality", LinkForbidden},
		{"reality", "memory", LinkForbidden},
		{"memory", "dreams", LinkUnknownNode},
		{"identity", "identity", LinkSelf},
	} {
		if out := p.Connect(gs, tc.a, tc.b); out.Status != tc.want {
			t.Errorf("Connect(%s, %s) = %v, want %v", tc.a, tc.b, out.Status, tc.want)
		}
	}
	if len(gs.Variables) != 0 {
		t.Errorf("Expected no state written, got %v", gs.Variables)
	}
}

func TestNetworkActivation(t *testing.T) {
	p := awakenNetwork()
	gs := models.NewGameState("whisper_awaken")

	if out := p.Connect(gs, "memory", "identity"); out.Status != LinkConnected || len(out.Activated) != 0 {
		t.Fatalf("Unexpected first link: %+v", out)
	}
	if out := p.Connect(gs, "identity", "memory"); out.Status != LinkAlreadyConnected {
		t.Errorf("Expected already connected, got %v", out.Status)
	}
	out := p.Connect(gs, "memory", "freedom")
	if diff := cmp.Diff([]string{"memory"}, out.Activated); diff != "" {
		t.Errorf("activated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"memory"}, p.Active(gs)); diff != "" {
		t.Errorf("active (-want +got):\n%s", diff)
	}

	out = p.Disconnect(gs, "freedom", "memory")
	if out.Status != LinkDisconnected {
		t.Fatalf("Expected disconnected, got %v", out.Status)
	}
	if len(p.Active(gs)) != 0 {
		t.Errorf("Expected memory to go dormant, got %v", p.Active(gs))
	}
}

func TestGraphConnected(t *testing.T) {
	g := NewGraph(map[string][]string{
		"freq_1": {"freq_2", "freq_5"},
		"freq_2": {"freq_3", "freq_4"},
		"freq_3": {"freq_4"},
		"freq_4": {"freq_5", "freq_6"},
		"freq_5": {"freq_6"},
	})
	if !g.Linked("freq_5", "freq_1") {
		t.Errorf("Expected links to be symmetric")
	}
	ok, links := g.Connected([]string{"freq_1", "freq_3", "freq_5"}, 2)
	if ok {
		t.Errorf("Expected freq_1, freq_3, freq_5 to be disconnected, links %v", links)
	}
	ok, links = g.Connected([]string{"freq_1", "freq_2", "freq_5"}, 2)
	if !ok {
		t.Errorf("Expected connected grid")
	}
	if diff := cmp.Diff([]string{"freq_1-freq_2", "freq_1-freq_5"}, links); diff != "" {
		t.Errorf("links (-want +got):\n%s", diff)
	}
}
