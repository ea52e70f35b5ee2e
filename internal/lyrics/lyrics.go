// Package lyrics parses Tidal's two synchronized-lyrics formats — plain
// LRC and TTML — into a time-sorted line list with binary-search lookup
// by playback position. Grounded on
// original_source/tidal-rs/src/core/lyrics.rs.
package lyrics

import (
	"encoding/xml"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Line is one synchronized lyric line: the position it starts at and its
// text.
type Line struct {
	Time time.Duration
	Text string
}

// Synced is a parsed, time-sorted lyric track.
type Synced struct {
	Lines []Line
}

// Parse dispatches on content's shape: LRC files start with a timestamp
// bracket, TTML is XML carrying <tt>/<p> elements. Returns false if
// content matches neither shape, or parses to zero usable lines.
func Parse(content string) (*Synced, bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, false
	}
	if strings.HasPrefix(content, "[") {
		return parseLRC(content)
	}
	if strings.Contains(content, "<tt") || strings.Contains(content, "<p ") {
		return parseTTML(content)
	}
	return nil, false
}

func parseLRC(content string) (*Synced, bool) {
	var lines []Line
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		end := strings.IndexByte(line, ']')
		if end < 0 {
			continue
		}
		timestamp := line[1:end]
		text := strings.TrimSpace(line[end+1:])
		t, ok := parseLRCTimestamp(timestamp)
		if !ok || text == "" {
			continue
		}
		lines = append(lines, Line{Time: t, Text: text})
	}
	if len(lines) == 0 {
		return nil, false
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Time < lines[j].Time })
	return &Synced{Lines: lines}, true
}

func parseLRCTimestamp(s string) (time.Duration, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ':' || r == '.' })
	switch len(parts) {
	case 2:
		mins, err1 := strconv.ParseInt(parts[0], 10, 64)
		secs, err2 := strconv.ParseInt(parts[1], 10, 64)
		if err1 != nil || err2 != nil {
			return 0, false
		}
		return time.Duration(mins*60+secs) * time.Second, true
	case 3:
		mins, err1 := strconv.ParseInt(parts[0], 10, 64)
		secs, err2 := strconv.ParseInt(parts[1], 10, 64)
		centis, err3 := strconv.ParseInt(parts[2], 10, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, false
		}
		return time.Duration(mins*60_000+secs*1000+centis*10) * time.Millisecond, true
	default:
		return 0, false
	}
}

// parseTTML walks <p begin="..."> elements with encoding/xml's token
// reader, the same streaming approach internal/manifest uses for MPD.
func parseTTML(content string) (*Synced, bool) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		lines        []Line
		currentBegin time.Duration
		haveBegin    bool
		currentText  strings.Builder
		inP          bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "p" {
				inP = true
				currentText.Reset()
				haveBegin = false
				for _, a := range el.Attr {
					if a.Name.Local == "begin" {
						if t, ok := parseTTMLTimestamp(a.Value); ok {
							currentBegin = t
							haveBegin = true
						}
					}
				}
			}
		case xml.CharData:
			if inP {
				currentText.Write(el)
			}
		case xml.EndElement:
			if el.Name.Local == "p" {
				inP = false
				text := strings.TrimSpace(currentText.String())
				if haveBegin && text != "" {
					lines = append(lines, Line{Time: currentBegin, Text: text})
				}
				currentText.Reset()
				haveBegin = false
			}
		}
	}

	if len(lines) == 0 {
		return nil, false
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Time < lines[j].Time })
	return &Synced{Lines: lines}, true
}

func parseTTMLTimestamp(s string) (time.Duration, bool) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		mins, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return 0, false
		}
		secs, millis, ok := parseSecondsMillis(parts[1])
		if !ok {
			return 0, false
		}
		return time.Duration(mins*60_000+secs*1000+millis) * time.Millisecond, true
	case 3:
		hours, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return 0, false
		}
		mins, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return 0, false
		}
		secs, millis, ok := parseSecondsMillis(parts[2])
		if !ok {
			return 0, false
		}
		return time.Duration(hours*3_600_000+mins*60_000+secs*1000+millis) * time.Millisecond, true
	default:
		return 0, false
	}
}

func parseSecondsMillis(s string) (secs, millis int64, ok bool) {
	whole, frac, hasFrac := strings.Cut(s, ".")
	secs, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	if !hasFrac {
		return secs, 0, true
	}
	if len(frac) > 3 {
		frac = frac[:3]
	}
	for len(frac) < 3 {
		frac += "0"
	}
	millis, err = strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return secs, millis, true
}

// LineAt returns the line active at position, or nil if position precedes
// every line.
func (s *Synced) LineAt(position time.Duration) *Line {
	idx, ok := s.LineIndexAt(position)
	if !ok {
		return nil
	}
	return &s.Lines[idx]
}

// LineIndexAt binary-searches for the last line whose start time is at or
// before position.
func (s *Synced) LineIndexAt(position time.Duration) (int, bool) {
	if len(s.Lines) == 0 {
		return 0, false
	}
	idx := sort.Search(len(s.Lines), func(i int) bool { return s.Lines[i].Time > position })
	if idx == 0 {
		return 0, false
	}
	return idx - 1, true
}

// ContextLine is one line of a ContextAt window, flagged if it is the
// line active at the queried position.
type ContextLine struct {
	Current bool
	Line    Line
}

// ContextAt returns up to before+after+1 lines centered on the line
// active at position. If no line is active yet (position precedes the
// first line), it returns the first after+1 lines instead, matching the
// original's lead-in behavior.
func (s *Synced) ContextAt(position time.Duration, before, after int) []ContextLine {
	currentIdx, ok := s.LineIndexAt(position)
	if !ok {
		n := after + 1
		if n > len(s.Lines) {
			n = len(s.Lines)
		}
		out := make([]ContextLine, n)
		for i := 0; i < n; i++ {
			out[i] = ContextLine{Current: false, Line: s.Lines[i]}
		}
		return out
	}

	start := currentIdx - before
	if start < 0 {
		start = 0
	}
	end := currentIdx + after + 1
	if end > len(s.Lines) {
		end = len(s.Lines)
	}

	out := make([]ContextLine, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, ContextLine{Current: i == currentIdx, Line: s.Lines[i]})
	}
	return out
}

// Display tracks which line was last surfaced during playback, so a
// caller can poll Update on every tick and only redraw when the active
// line actually changes.
type Display struct {
	lyrics    *Synced
	lastIndex int
	hasLast   bool
}

// NewDisplay wraps lyrics for position-driven display.
func NewDisplay(lyrics *Synced) *Display {
	return &Display{lyrics: lyrics}
}

// Update returns the newly active line's text if position has moved onto
// a different line since the last call, or ("", false) if the active
// line hasn't changed.
func (d *Display) Update(position time.Duration) (string, bool) {
	idx, ok := d.lyrics.LineIndexAt(position)
	if ok == d.hasLast && (!ok || idx == d.lastIndex) {
		return "", false
	}
	d.hasLast = ok
	d.lastIndex = idx
	if !ok {
		return "", false
	}
	return d.lyrics.Lines[idx].Text, true
}

// Current returns the line active at position without affecting Update's
// change tracking.
func (d *Display) Current(position time.Duration) (string, bool) {
	line := d.lyrics.LineAt(position)
	if line == nil {
		return "", false
	}
	return line.Text, true
}

// Lyrics returns the wrapped lyric track.
func (d *Display) Lyrics() *Synced {
	return d.lyrics
}
