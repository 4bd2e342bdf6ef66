package report

import (
	"bytes"
	"testing"
)

func TestRenderDCFChart(t *testing.T) {
	png, err := RenderDCFChart(sampleDCF())
	if err != nil {
		t.Fatalf("RenderDCFChart failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected PNG signature")
	}
}

func TestRenderDCFChart_NoProjections(t *testing.T) {
	r := sampleDCF()
	r.Projections = nil
	if _, err := RenderDCFChart(r); err == nil {
		t.Error("expected error for empty projections")
	}
	if _, err := RenderDCFChart(nil); err == nil {
		t.Error("expected error for nil result")
	}
}
