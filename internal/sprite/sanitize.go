package sprite

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"gsnake-editor-api/internal/shared/errors"
)

// Element types that are dropped with their whole subtree.
var blockedElements = map[string]struct{}{
	"script":        {},
	"foreignobject": {},
	"iframe":        {},
	"object":        {},
	"embed":         {},
}

// Sanitize parses markup as XML and re-emits it with active content removed.
// It fails when the document does not parse or its root element is not
// <svg>; a failure yields no output at all, never a partially-sanitized
// document.
func Sanitize(markup []byte) ([]byte, error) {
	decoder := xml.NewDecoder(bytes.NewReader(markup))

	var out bytes.Buffer
	encoder := xml.NewEncoder(&out)

	sawRoot := false
	skipDepth := 0

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapValidation("Sprite markup is not valid XML", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if !sawRoot {
				if strings.ToLower(t.Name.Local) != "svg" {
					return nil, errors.Validationf("Sprite markup root element is <%s>, not <svg>", t.Name.Local)
				}
				sawRoot = true
			}

			if skipDepth > 0 {
				skipDepth++
				continue
			}
			if _, blocked := blockedElements[strings.ToLower(t.Name.Local)]; blocked {
				skipDepth = 1
				continue
			}

			t.Attr = sanitizeAttrs(t.Attr)
			if err := encoder.EncodeToken(t); err != nil {
				return nil, errors.WrapInternal("re-encode sprite markup", err)
			}

		case xml.EndElement:
			if skipDepth > 0 {
				skipDepth--
				continue
			}
			if err := encoder.EncodeToken(t); err != nil {
				return nil, errors.WrapInternal("re-encode sprite markup", err)
			}

		case xml.CharData:
			if skipDepth > 0 {
				continue
			}
			if err := encoder.EncodeToken(t.Copy()); err != nil {
				return nil, errors.WrapInternal("re-encode sprite markup", err)
			}

		case xml.Comment, xml.ProcInst, xml.Directive:
			// Non-element tokens carry no renderable content; drop them.
		}
	}

	if !sawRoot {
		return nil, errors.Validation("Sprite markup contains no elements")
	}

	if err := encoder.Flush(); err != nil {
		return nil, errors.WrapInternal("re-encode sprite markup", err)
	}
	return out.Bytes(), nil
}

// sanitizeAttrs strips event handlers, inline style, javascript: URLs and
// any href that is not a same-document fragment reference.
func sanitizeAttrs(attrs []xml.Attr) []xml.Attr {
	kept := attrs[:0]
	for _, attr := range attrs {
		name := strings.ToLower(attr.Name.Local)
		value := strings.TrimSpace(attr.Value)

		if strings.HasPrefix(name, "on") {
			continue
		}
		if name == "style" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(value), "javascript:") {
			continue
		}
		if name == "href" && !strings.HasPrefix(value, "#") {
			continue
		}
		kept = append(kept, attr)
	}
	return kept
}
