package parse

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Segment is one element of an exported message text: either plain text or a
// labeled span such as a text link. Exactly one of Plain/Span is set.
type Segment struct {
	Plain string
	Span  *LabeledSpan
}

// LabeledSpan is a text fragment carrying attributes (e.g. a link target).
type LabeledSpan struct {
	Type string `json:"type"`
	Text string `json:"text"`
	Href string `json:"href,omitempty"`
}

// Text flattens either segment shape to its trimmed text content.
func (s Segment) Text() string {
	if s.Span != nil {
		return strings.TrimSpace(s.Span.Text)
	}
	return strings.TrimSpace(s.Plain)
}

// UnmarshalJSON accepts either a JSON string or a labeled-span object.
func (s *Segment) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.Plain)
	}
	span := &LabeledSpan{}
	if err := json.Unmarshal(data, span); err != nil {
		return fmt.Errorf("segment is neither string nor span: %w", err)
	}
	s.Span = span
	return nil
}

// SegmentList accepts either a single JSON string or an array of segments.
type SegmentList []Segment

// UnmarshalJSON decodes a bare string as a one-element list.
func (l *SegmentList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var plain string
		if err := json.Unmarshal(data, &plain); err != nil {
			return err
		}
		*l = SegmentList{{Plain: plain}}
		return nil
	}
	var segs []Segment
	if err := json.Unmarshal(data, &segs); err != nil {
		return err
	}
	*l = SegmentList(segs)
	return nil
}
