package bridge

import (
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// SchemaNode is the Go-side description of a schema tree handed to
// ExportSchema. Format follows the C Data Interface format mini-language
// and is not interpreted here.
type SchemaNode struct {
	Format     string
	Name       string
	Metadata   arrow.Metadata
	Flags      Flag
	Children   []*SchemaNode
	Dictionary *SchemaNode
}

// ArrayNode is the Go-side description of an array tree handed to
// ExportArray. Buffers are shared, not copied: the exporter retains each
// one until the consumer releases the array, so they must live outside the
// Go heap (see WithAllocator). A nil entry exports as a NULL buffer.
type ArrayNode struct {
	Length     int64
	NullCount  int64
	Offset     int64
	Buffers    []*memory.Buffer
	Children   []*ArrayNode
	Dictionary *ArrayNode
}

func childPath(parent string, i int) string {
	if parent == "" {
		return strconv.Itoa(i)
	}
	return parent + "." + strconv.Itoa(i)
}

func dictPath(parent string) string {
	if parent == "" {
		return "d"
	}
	return parent + ".d"
}

func displayPath(path string) string {
	if path == "" {
		return "root"
	}
	return path
}

// validateSchemaNode checks a whole tree before anything is allocated. A node
// may appear more than once, but never below itself.
func validateSchemaNode(n *SchemaNode, path string) error {
	return validateSchema(n, path, make(map[*SchemaNode]struct{}))
}

func validateSchema(n *SchemaNode, path string, onPath map[*SchemaNode]struct{}) error {
	if n == nil {
		return fmt.Errorf("%w: nil schema at %s", ErrInvalidNode, displayPath(path))
	}
	if n.Format == "" {
		return fmt.Errorf("%w: empty format at %s", ErrInvalidNode, displayPath(path))
	}
	if _, ok := onPath[n]; ok {
		return fmt.Errorf("%w: cycle at %s", ErrInvalidNode, displayPath(path))
	}
	onPath[n] = struct{}{}
	defer delete(onPath, n)

	for i, c := range n.Children {
		if err := validateSchema(c, childPath(path, i), onPath); err != nil {
			return err
		}
	}
	if n.Dictionary != nil {
		return validateSchema(n.Dictionary, dictPath(path), onPath)
	}
	return nil
}

func validateArrayNode(n *ArrayNode, path string) error {
	return validateArray(n, path, make(map[*ArrayNode]struct{}))
}

func validateArray(n *ArrayNode, path string, onPath map[*ArrayNode]struct{}) error {
	if n == nil {
		return fmt.Errorf("%w: nil array at %s", ErrInvalidNode, displayPath(path))
	}
	if n.Length < 0 || n.Offset < 0 {
		return fmt.Errorf("%w: negative length or offset at %s", ErrInvalidNode, displayPath(path))
	}
	if n.NullCount < -1 || n.NullCount > n.Length {
		return fmt.Errorf("%w: null count %d out of range at %s", ErrInvalidNode, n.NullCount, displayPath(path))
	}
	if _, ok := onPath[n]; ok {
		return fmt.Errorf("%w: cycle at %s", ErrInvalidNode, displayPath(path))
	}
	onPath[n] = struct{}{}
	defer delete(onPath, n)

	for i, c := range n.Children {
		if err := validateArray(c, childPath(path, i), onPath); err != nil {
			return err
		}
	}
	if n.Dictionary != nil {
		return validateArray(n.Dictionary, dictPath(path), onPath)
	}
	return nil
}
