package bridge

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRejectsCycles(t *testing.T) {
	parent := &SchemaNode{Format: "+s"}
	child := &SchemaNode{Format: "+l", Children: []*SchemaNode{parent}}
	parent.Children = []*SchemaNode{child}

	err := validateSchemaNode(parent, "")
	if !errors.Is(err, ErrInvalidNode) || !strings.Contains(err.Error(), "cycle at 0.0") {
		t.Errorf("schema cycle through children: %v", err)
	}

	self := &SchemaNode{Format: "i"}
	self.Dictionary = self
	if err := validateSchemaNode(self, ""); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("schema cycle through dictionary: %v", err)
	}

	arr := &ArrayNode{Length: 1}
	arr.Children = []*ArrayNode{{Length: 1, Children: []*ArrayNode{arr}}}
	if err := validateArrayNode(arr, ""); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("array cycle: %v", err)
	}

	var out ArrowSchema
	if err := ExportSchema(parent, &out); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("ExportSchema of cyclic tree = %v, want ErrInvalidNode", err)
	}
	if !out.IsReleased() {
		t.Error("ExportSchema filled out for a cyclic tree")
	}
}

func TestValidateAllowsSharedNodes(t *testing.T) {
	leaf := &SchemaNode{Format: "i"}
	root := &SchemaNode{Format: "+s", Children: []*SchemaNode{leaf, leaf}}
	if err := validateSchemaNode(root, ""); err != nil {
		t.Errorf("shared schema leaf: %v", err)
	}

	dict := &ArrayNode{Length: 2}
	arr := &ArrayNode{Length: 2, Children: []*ArrayNode{
		{Length: 2, Dictionary: dict},
		{Length: 2, Dictionary: dict},
	}}
	if err := validateArrayNode(arr, ""); err != nil {
		t.Errorf("shared array dictionary: %v", err)
	}
}
