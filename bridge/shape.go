package bridge

import "fmt"

// CheckShape reports whether schema and array describe trees of the same
// shape: equal child counts at every level and a dictionary on one side
// exactly when the other has one. Both trees must be live.
func CheckShape(schema *ArrowSchema, array *ArrowArray) error {
	return checkShape(schema, array, "")
}

func checkShape(s *ArrowSchema, a *ArrowArray, path string) error {
	if s == nil || a == nil {
		return fmt.Errorf("%w: missing node at %s", ErrShapeMismatch, displayPath(path))
	}
	if s.IsReleased() || a.IsReleased() {
		return fmt.Errorf("%w: at %s", ErrReleased, displayPath(path))
	}
	if s.NumChildren() != a.NumChildren() {
		return fmt.Errorf("%w: %s has %d schema children and %d array children",
			ErrShapeMismatch, displayPath(path), s.NumChildren(), a.NumChildren())
	}
	sc, ac := s.Children(), a.Children()
	for i := range sc {
		if err := checkShape(sc[i], ac[i], childPath(path, i)); err != nil {
			return err
		}
	}
	sd, ad := s.Dictionary(), a.Dictionary()
	switch {
	case sd == nil && ad == nil:
		return nil
	case sd == nil || ad == nil:
		return fmt.Errorf("%w: dictionary present on one side only at %s", ErrShapeMismatch, displayPath(path))
	}
	return checkShape(sd, ad, dictPath(path))
}
