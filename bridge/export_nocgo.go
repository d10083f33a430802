//go:build !cgo
// +build !cgo

package bridge

// ExportSchema requires cgo: the release callback has to be a C function.
func ExportSchema(node *SchemaNode, _ *ArrowSchema, _ ...ExportOption) error {
	if err := validateSchemaNode(node, ""); err != nil {
		return err
	}
	return ErrCgoRequired
}

// ExportArray requires cgo.
func ExportArray(node *ArrayNode, _ *ArrowArray, _ ...ExportOption) error {
	if err := validateArrayNode(node, ""); err != nil {
		return err
	}
	return ErrCgoRequired
}
