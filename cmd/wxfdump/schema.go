package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arloliu/wxf/stream"
)

// schema.toml key mapping.
//
//	max_elements = 1048576
//	list_fallback = true
//	repeat_last = false
//
//	[[record]]
//	name = "count"
//	type = "int"
type fileSchema struct {
	MaxElements  int            `toml:"max_elements"`
	ListFallback bool           `toml:"list_fallback"`
	RepeatLast   bool           `toml:"repeat_last"`
	Records      []recordSchema `toml:"record"`
}

type recordSchema struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// schema is a validated fileSchema.
type schema struct {
	maxElements  int
	listFallback bool
	repeatLast   bool
	records      []recordSchema
}

func defaultSchema() schema {
	return schema{maxElements: stream.DefaultMaxElements}
}

// loadSchema reads a TOML schema and checks every record type against known.
func loadSchema(path string, known func(string) bool) (schema, error) {
	s := defaultSchema()

	var raw fileSchema
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return schema{}, fmt.Errorf("load schema: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return schema{}, fmt.Errorf("load schema: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("max_elements") {
		if raw.MaxElements < 0 {
			return schema{}, fmt.Errorf("load schema: max_elements must not be negative, got %d", raw.MaxElements)
		}
		s.maxElements = raw.MaxElements
	}
	if meta.IsDefined("list_fallback") {
		s.listFallback = raw.ListFallback
	}
	if meta.IsDefined("repeat_last") {
		s.repeatLast = raw.RepeatLast
	}

	if len(raw.Records) == 0 {
		return schema{}, fmt.Errorf("load schema: no [[record]] entries in %s", path)
	}

	for i, rec := range raw.Records {
		rec.Type = strings.TrimSpace(rec.Type)
		rec.Name = strings.TrimSpace(rec.Name)
		if rec.Name == "" {
			rec.Name = fmt.Sprintf("#%d", i)
		}
		if !known(rec.Type) {
			return schema{}, fmt.Errorf("load schema: record %s has unknown type %q", rec.Name, rec.Type)
		}
		s.records = append(s.records, rec)
	}

	return s, nil
}

// recordAt returns the schema of the i-th record in the stream.
func (s schema) recordAt(i int) (recordSchema, error) {
	switch {
	case i < len(s.records):
		return s.records[i], nil
	case s.repeatLast:
		return s.records[len(s.records)-1], nil
	default:
		return recordSchema{}, fmt.Errorf("schema describes %d records, stream has more", len(s.records))
	}
}

// readerOptions translates schema settings into reader options.
func (s schema) readerOptions() []stream.ReaderOption {
	opts := []stream.ReaderOption{stream.WithMaxElements(s.maxElements)}
	if s.listFallback {
		opts = append(opts, stream.WithListFallback(stream.AlwaysListFallback))
	}

	return opts
}
