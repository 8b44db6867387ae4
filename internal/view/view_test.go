package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ProductDashboard/internal/catalog"
)

func TestRender_DashboardEscapesText(t *testing.T) {
	r := MustNew()
	rec := httptest.NewRecorder()

	err := r.Render(rec, http.StatusOK, PageDashboard, Dashboard{
		Title:    "Dashboard",
		Username: `<b>eve</b>`,
		Products: catalog.Catalog{
			{ID: "a&b=1 2", Name: `<script>alert(1)</script>`, Price: 1.5, Description: `"quoted"`},
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := rec.Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") || strings.Contains(body, "<b>eve</b>") {
		t.Fatalf("unescaped user text in body:\n%s", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Fatalf("expected escaped name in body")
	}
	if !strings.Contains(body, "delete_id=a%26b%3d1%202") {
		t.Fatalf("expected query-escaped id in links:\n%s", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content-type=%q", ct)
	}
}

func TestRender_EmptyCatalogPlaceholder(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := MustNew().Render(rec, http.StatusOK, PageDashboard, Dashboard{Username: "a"}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "No products added yet.") {
		t.Fatalf("missing placeholder")
	}
	if strings.Contains(body, "<table") {
		t.Fatalf("table rendered for empty catalog")
	}
}

func TestRender_UnknownPage(t *testing.T) {
	if err := MustNew().Render(httptest.NewRecorder(), http.StatusOK, "nope", nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestForm_Editing(t *testing.T) {
	if (Form{}).Editing() {
		t.Fatalf("empty form reported editing")
	}

	f := FormFromProduct(catalog.Product{ID: "x", Name: "Pen", Price: 1.5, Description: "d"})
	if !f.Editing() || f.Price != "1.5" {
		t.Fatalf("form=%+v", f)
	}
}
