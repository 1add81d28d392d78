package scrape

import (
	"strings"
	"testing"
)

func TestExtract_YtInitialData_WindowAssignment(t *testing.T) {
	html := `<script>window["ytInitialData"] = {"contents": {"a": 1}};</script>`
	blob, err := Extract(html, BlobYtInitialData)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	contents, ok := blob["contents"].(map[string]any)
	if !ok || contents["a"].(float64) != 1 {
		t.Fatalf("Extract() blob = %#v", blob)
	}
}

func TestExtract_YtInitialData_BareAssignment(t *testing.T) {
	html := `<script>ytInitialData = {"contents": {"a": 2}};</script>`
	blob, err := Extract(html, BlobYtInitialData)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if blob["contents"].(map[string]any)["a"].(float64) != 2 {
		t.Fatalf("Extract() blob = %#v", blob)
	}
}

func TestExtract_Ytcfg(t *testing.T) {
	html := `<script>ytcfg.set( {"INNERTUBE_API_KEY": "abc"} );</script>`
	blob, err := Extract(html, BlobYtcfg)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if blob["INNERTUBE_API_KEY"] != "abc" {
		t.Fatalf("Extract() blob = %#v", blob)
	}
}

func TestExtract_LenientTrailingContent(t *testing.T) {
	// Trailing script content after the JSON value must be ignored,
	// not cause a decode error.
	html := `ytInitialPlayerResponse = {"videoDetails": {"isUpcoming": true}}; var x = 5;`
	blob, err := Extract(html, BlobYtInitialPlayerResponse)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	vd := blob["videoDetails"].(map[string]any)
	if vd["isUpcoming"] != true {
		t.Fatalf("Extract() blob = %#v", blob)
	}
}

func TestExtract_MissingBlob(t *testing.T) {
	if _, err := Extract("<html></html>", BlobYtcfg); err == nil {
		t.Fatal("Extract() expected error when blob absent")
	}
}

func TestExtract_UnknownBlobName(t *testing.T) {
	if _, err := Extract("{}", "bogus"); err == nil {
		t.Fatal("Extract() expected error for unknown blob name")
	}
}

func TestErrorPageSentinel_IsDetectable(t *testing.T) {
	html := `<html>window.ERROR_PAGE</html>`
	if !strings.Contains(html, errorPageSentinel) {
		t.Fatal("sentinel substring check is broken")
	}
}
