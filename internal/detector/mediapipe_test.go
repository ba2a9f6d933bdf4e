package detector

import (
	"fmt"
	"strings"
	"testing"
)

func fullHandJSON(handedness string, score float64) string {
	pts := make([]string, NumLandmarks)
	for i := range pts {
		pts[i] = fmt.Sprintf(`{"x":%g,"y":%g,"z":0}`, float64(i)/100, 0.5)
	}
	return fmt.Sprintf(`{"points":[%s],"handedness":%q,"score":%g}`, strings.Join(pts, ","), handedness, score)
}

func TestParseResponse(t *testing.T) {
	t.Run("full hand", func(t *testing.T) {
		line := `{"hands":[` + fullHandJSON("Right", 0.9) + `]}`
		hands, err := parseResponse(line)
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("len(hands) = %d, want 1", len(hands))
		}
		if hands[0].Handedness != "Right" || hands[0].Score != 0.9 {
			t.Errorf("hand = %s/%v, want Right/0.9", hands[0].Handedness, hands[0].Score)
		}
		if got := hands[0].Points[IndexTip].X; got != float64(IndexTip)/100 {
			t.Errorf("index tip x = %v, want %v", got, float64(IndexTip)/100)
		}
	})

	t.Run("partial hand skipped", func(t *testing.T) {
		line := `{"hands":[{"points":[{"x":0,"y":0,"z":0}],"handedness":"Left","score":1},` + fullHandJSON("Left", 0.5) + `]}`
		hands, err := parseResponse(line)
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if len(hands) != 1 || hands[0].Score != 0.5 {
			t.Errorf("hands = %+v, want only the full hand", hands)
		}
	})

	t.Run("no hands", func(t *testing.T) {
		hands, err := parseResponse(`{"hands":[]}`)
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if len(hands) != 0 {
			t.Errorf("len(hands) = %d, want 0", len(hands))
		}
	})

	t.Run("service error", func(t *testing.T) {
		_, err := parseResponse(`{"hands":[],"error":"model not loaded"}`)
		if err == nil || !strings.Contains(err.Error(), "model not loaded") {
			t.Errorf("error = %v, want service error", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		if _, err := parseResponse(`{"hands":`); err == nil {
			t.Error("expected parse error")
		}
	})
}
