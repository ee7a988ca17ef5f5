package sprite

import (
	"strings"
	"testing"
)

func TestSanitizeRemovesActiveContent(t *testing.T) {
	markup := `<svg xmlns="http://www.w3.org/2000/svg">
	  <script>alert(1)</script>
	  <rect onclick="alert(2)" style="fill:red" width="10" height="10"/>
	  <foreignObject><body>nope</body></foreignObject>
	  <use href="#snake-head"/>
	  <a href="https://evil.example/x"><circle r="1"/></a>
	  <image href="javascript:alert(3)"/>
	</svg>`

	out, err := Sanitize([]byte(markup))
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	got := string(out)

	for _, banned := range []string{"script", "alert", "foreignObject", "onclick", "style=", "javascript:", "evil.example"} {
		if strings.Contains(got, banned) {
			t.Errorf("sanitized output still contains %q: %s", banned, got)
		}
	}
	if !strings.Contains(got, "#snake-head") {
		t.Errorf("fragment href stripped from: %s", got)
	}
	if !strings.Contains(got, "rect") || !strings.Contains(got, "circle") {
		t.Errorf("benign elements missing from: %s", got)
	}
}

func TestSanitizeRejectsNonSVGRoot(t *testing.T) {
	if _, err := Sanitize([]byte(`<html><body/></html>`)); err == nil {
		t.Fatal("expected error for non-svg root")
	}
}

func TestSanitizeRejectsBrokenXML(t *testing.T) {
	if _, err := Sanitize([]byte(`<svg><rect`)); err == nil {
		t.Fatal("expected error for unparsable markup")
	}
}

func TestSanitizeRejectsEmptyDocument(t *testing.T) {
	if _, err := Sanitize([]byte(`  `)); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestSanitizeDropsNestedBlockedSubtrees(t *testing.T) {
	markup := `<svg><g><iframe><rect width="1"/></iframe><rect width="2"/></g></svg>`

	out, err := Sanitize([]byte(markup))
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	got := string(out)

	if strings.Contains(got, "iframe") || strings.Contains(got, `width="1"`) {
		t.Errorf("blocked subtree survived: %s", got)
	}
	if !strings.Contains(got, `width="2"`) {
		t.Errorf("sibling of blocked subtree lost: %s", got)
	}
}
