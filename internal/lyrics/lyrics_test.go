package lyrics

import (
	"testing"
	"time"
)

const sampleLRC = `[00:01.00]First line
[00:03.50]Second line
[00:02.00]Out of order line
`

func TestParseLRCSortsByTime(t *testing.T) {
	synced, ok := Parse(sampleLRC)
	if !ok {
		t.Fatal("Parse returned false for valid LRC content")
	}
	want := []string{"First line", "Out of order line", "Second line"}
	if len(synced.Lines) != len(want) {
		t.Fatalf("Lines = %v, want %d entries", synced.Lines, len(want))
	}
	for i, text := range want {
		if synced.Lines[i].Text != text {
			t.Errorf("Lines[%d].Text = %q, want %q", i, synced.Lines[i].Text, text)
		}
	}
}

func TestParseLRCTwoAndThreeFieldTimestamps(t *testing.T) {
	synced, ok := Parse("[01:02]Two field\n[00:00.50]Three field")
	if !ok {
		t.Fatal("expected a successful parse")
	}
	if synced.Lines[0].Time != 500*time.Millisecond {
		t.Errorf("first line time = %v, want 500ms", synced.Lines[0].Time)
	}
	if synced.Lines[1].Time != 62*time.Second {
		t.Errorf("second line time = %v, want 62s", synced.Lines[1].Time)
	}
}

const sampleTTML = `<?xml version="1.0"?>
<tt xmlns="http://www.w3.org/ns/ttml">
  <body>
    <div>
      <p begin="00:00:01.000">First</p>
      <p begin="00:00:03.500">Second</p>
    </div>
  </body>
</tt>`

func TestParseTTML(t *testing.T) {
	synced, ok := Parse(sampleTTML)
	if !ok {
		t.Fatal("Parse returned false for valid TTML content")
	}
	if len(synced.Lines) != 2 {
		t.Fatalf("Lines = %v, want 2 entries", synced.Lines)
	}
	if synced.Lines[0].Text != "First" || synced.Lines[0].Time != 1*time.Second {
		t.Errorf("Lines[0] = %+v", synced.Lines[0])
	}
	if synced.Lines[1].Text != "Second" || synced.Lines[1].Time != 3500*time.Millisecond {
		t.Errorf("Lines[1] = %+v", synced.Lines[1])
	}
}

func TestParseUnrecognizedContentReturnsFalse(t *testing.T) {
	if _, ok := Parse("just some plain unsynced lyrics text"); ok {
		t.Fatal("expected Parse to reject unsynced plain text")
	}
}

// TestLineIndexAtBinarySearch is testable property #11: the active line
// is the last one whose timestamp is at or before the query position.
func TestLineIndexAtBinarySearch(t *testing.T) {
	synced := &Synced{Lines: []Line{
		{Time: 1 * time.Second, Text: "a"},
		{Time: 3 * time.Second, Text: "b"},
		{Time: 5 * time.Second, Text: "c"},
	}}

	cases := []struct {
		pos  time.Duration
		want string
		ok   bool
	}{
		{500 * time.Millisecond, "", false},
		{1 * time.Second, "a", true},
		{2 * time.Second, "a", true},
		{3 * time.Second, "b", true},
		{4999 * time.Millisecond, "b", true},
		{5 * time.Second, "c", true},
		{10 * time.Second, "c", true},
	}
	for _, c := range cases {
		line := synced.LineAt(c.pos)
		if !c.ok {
			if line != nil {
				t.Errorf("LineAt(%v) = %+v, want nil", c.pos, line)
			}
			continue
		}
		if line == nil || line.Text != c.want {
			t.Errorf("LineAt(%v) = %+v, want text %q", c.pos, line, c.want)
		}
	}
}

// TestContextAtWindow is testable property #12.
func TestContextAtWindow(t *testing.T) {
	synced := &Synced{Lines: []Line{
		{Time: 0, Text: "0"},
		{Time: 1 * time.Second, Text: "1"},
		{Time: 2 * time.Second, Text: "2"},
		{Time: 3 * time.Second, Text: "3"},
		{Time: 4 * time.Second, Text: "4"},
	}}

	window := synced.ContextAt(2*time.Second, 1, 1)
	if len(window) != 3 {
		t.Fatalf("window = %v, want 3 lines", window)
	}
	if window[0].Line.Text != "1" || window[1].Line.Text != "2" || window[2].Line.Text != "3" {
		t.Fatalf("window texts = %v", window)
	}
	if !window[1].Current {
		t.Error("expected the middle line (position's own line) to be flagged current")
	}
	if window[0].Current || window[2].Current {
		t.Error("only the active line should be flagged current")
	}
}

func TestDisplayUpdateOnlyFiresOnChange(t *testing.T) {
	synced := &Synced{Lines: []Line{
		{Time: 0, Text: "a"},
		{Time: 2 * time.Second, Text: "b"},
	}}
	d := NewDisplay(synced)

	text, changed := d.Update(0)
	if !changed || text != "a" {
		t.Fatalf("first Update = (%q, %v), want (a, true)", text, changed)
	}

	_, changed = d.Update(1 * time.Second)
	if changed {
		t.Fatal("Update should not fire again while still on the same line")
	}

	text, changed = d.Update(2 * time.Second)
	if !changed || text != "b" {
		t.Fatalf("Update at line change = (%q, %v), want (b, true)", text, changed)
	}
}
