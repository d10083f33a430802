// Package inspect renders descriptor trees for logs and debugging. It only
// reads public fields: private data is never touched and nothing is
// released.
package inspect

import (
	"fmt"

	"github.com/isesword/arrow-cdata-bridge/bridge"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Schema describes a schema tree.
func Schema(s *bridge.ArrowSchema) (*structpb.Struct, error) {
	m, err := schemaMap(s)
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// Array describes an array tree.
func Array(a *bridge.ArrowArray) (*structpb.Struct, error) {
	return structpb.NewStruct(arrayMap(a))
}

// JSON renders schema and array (either may be nil) as indented JSON.
func JSON(s *bridge.ArrowSchema, a *bridge.ArrowArray) ([]byte, error) {
	out := map[string]any{}
	if s != nil {
		m, err := schemaMap(s)
		if err != nil {
			return nil, err
		}
		out["schema"] = m
	}
	if a != nil {
		out["array"] = arrayMap(a)
	}
	st, err := structpb.NewStruct(out)
	if err != nil {
		return nil, fmt.Errorf("inspect: %w", err)
	}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
}

func schemaMap(s *bridge.ArrowSchema) (map[string]any, error) {
	if s.IsReleased() {
		return map[string]any{"released": true}, nil
	}
	m := map[string]any{
		"format": s.Format(),
		"flags":  int64(s.Flags()),
	}
	if name := s.Name(); name != "" {
		m["name"] = name
	}
	if s.Flags() != 0 {
		m["flag_names"] = s.Flags().String()
	}

	md, err := s.Metadata()
	if err != nil {
		return nil, fmt.Errorf("inspect: %s: %w", s.Format(), err)
	}
	if md.Len() > 0 {
		kv := make(map[string]any, md.Len())
		for i, k := range md.Keys() {
			kv[k] = md.Values()[i]
		}
		m["metadata"] = kv
	}

	if n := s.NumChildren(); n > 0 {
		children := make([]any, 0, n)
		for _, c := range s.Children() {
			cm, err := schemaMap(c)
			if err != nil {
				return nil, err
			}
			children = append(children, cm)
		}
		m["children"] = children
	}
	if d := s.Dictionary(); d != nil {
		dm, err := schemaMap(d)
		if err != nil {
			return nil, err
		}
		m["dictionary"] = dm
	}
	return m, nil
}

func arrayMap(a *bridge.ArrowArray) map[string]any {
	if a.IsReleased() {
		return map[string]any{"released": true}
	}
	m := map[string]any{
		"length":     a.Len(),
		"null_count": a.NullCount(),
		"offset":     a.Offset(),
	}
	if n := a.NumBuffers(); n > 0 {
		present := make([]any, 0, n)
		for _, b := range a.Buffers() {
			present = append(present, b != nil)
		}
		m["buffers"] = present
	}
	if n := a.NumChildren(); n > 0 {
		children := make([]any, 0, n)
		for _, c := range a.Children() {
			children = append(children, arrayMap(c))
		}
		m["children"] = children
	}
	if d := a.Dictionary(); d != nil {
		m["dictionary"] = arrayMap(d)
	}
	return m
}
