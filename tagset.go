package exifmeta

import (
	"bytes"
	"encoding/json"
)

// TagSet maps tag names to rendered values, remembering the order in which
// names were first set. The zero value is an empty set ready to use.
type TagSet struct {
	tags  []Tag
	index map[string]int
}

// NewTagSet builds a set from tags in directory order.
func NewTagSet(tags []Tag) *TagSet {
	ts := &TagSet{}
	for _, tag := range tags {
		ts.Set(tag)
	}
	return ts
}

// Set adds tag to the set. A tag whose name is already present replaces the
// previous value but keeps the original position.
func (ts *TagSet) Set(tag Tag) {
	if ts.index == nil {
		ts.index = make(map[string]int)
	}
	if i, ok := ts.index[tag.Name]; ok {
		ts.tags[i] = tag
		return
	}
	ts.index[tag.Name] = len(ts.tags)
	ts.tags = append(ts.tags, tag)
}

// Get returns the value stored under name.
func (ts *TagSet) Get(name string) (value string, ok bool) {
	if ts == nil {
		return "", false
	}
	i, ok := ts.index[name]
	if !ok {
		return "", false
	}
	return ts.tags[i].Value, true
}

// Len returns the number of distinct names in the set.
func (ts *TagSet) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.tags)
}

// Tags returns a copy of the tags in insertion order.
func (ts *TagSet) Tags() []Tag {
	if ts == nil {
		return nil
	}
	return append([]Tag(nil), ts.tags...)
}

// MarshalJSON encodes the set as a JSON object with keys in insertion order.
func (ts *TagSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tag := range ts.Tags() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(tag.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(tag.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
