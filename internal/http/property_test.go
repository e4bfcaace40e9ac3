package handlers_test

import (
	"fmt"
	"strings"
	"testing"
)

func newListing(title string) map[string]any {
	return map[string]any{
		"title":          title,
		"address":        "서울 성북구 안암동 1-2",
		"deposit":        1000000,
		"monthlyRent":    400000,
		"maintenanceFee": nil,
		"description":    "고려대 정문 도보 3분",
		"photos":         []string{"https://res.cloudinary.com/demo/image/upload/a.jpg"},
		"category":       "원룸",
	}
}

func TestPropertyTrashLifecycleOverHTTP(t *testing.T) {
	a := newTestApp(t)
	a.adminLogin(t, "sid-admin")

	code, created := a.do(t, "POST", "/api/properties", "sid-admin", newListing("안암동 신축 원룸"))
	if code != 201 {
		t.Fatalf("create: %d %v", code, created)
	}
	id := int64(created["id"].(float64))
	path := fmt.Sprintf("/api/properties/%d", id)

	if code, _ := a.do(t, "DELETE", path, "sid-admin", nil); code != 200 {
		t.Fatalf("delete: %d", code)
	}
	if code, _ := a.do(t, "GET", path, "sid-visitor", nil); code != 404 {
		t.Fatalf("trashed property visible: %d", code)
	}

	code, trash := a.do(t, "GET", "/api/trash", "sid-admin", nil)
	if code != 200 {
		t.Fatalf("trash: %d", code)
	}
	items := trash["properties"].([]any)
	if len(items) != 1 {
		t.Fatalf("trash should hold one property: %v", items)
	}
	entry := items[0].(map[string]any)
	if int64(entry["id"].(float64)) != id || entry["deletedAt"] == nil {
		t.Fatalf("trash entry missing id or deletedAt: %v", entry)
	}

	if code, _ := a.do(t, "POST", fmt.Sprintf("/api/trash/%d/restore", id), "sid-admin", nil); code != 200 {
		t.Fatalf("restore: %d", code)
	}
	code, got := a.do(t, "GET", path, "sid-visitor", nil)
	if code != 200 || got["isActive"] != true || got["deletedAt"] != nil {
		t.Fatalf("restored property: %d %v", code, got)
	}

	// Purge requires the property to be in the trash first.
	if code, _ := a.do(t, "DELETE", fmt.Sprintf("/api/trash/%d", id), "sid-admin", nil); code != 404 {
		t.Fatalf("purge of active property: %d", code)
	}
	a.do(t, "DELETE", path, "sid-admin", nil)
	if code, _ := a.do(t, "DELETE", fmt.Sprintf("/api/trash/%d", id), "sid-admin", nil); code != 200 {
		t.Fatalf("purge: %d", code)
	}
	if code, _ := a.do(t, "POST", fmt.Sprintf("/api/trash/%d/restore", id), "sid-admin", nil); code != 404 {
		t.Fatalf("restore after purge: %d", code)
	}
}

func TestAdminRoutesIgnoreClientHeaders(t *testing.T) {
	a := newTestApp(t)

	req := newListing("헤더로 등록")
	entries := captureLogs(t, func() {
		resp, _ := a.rawWithHeader(t, "POST", "/api/properties", "sid-x", req, "x-admin", "true")
		if resp.StatusCode != 403 {
			t.Fatalf("x-admin header granted access: %d", resp.StatusCode)
		}
	})
	if !hasAction(entries, "access.denied.admin") {
		t.Fatal("expected access.denied.admin log")
	}

	// A logged-in user is not an admin either.
	a.login(t, "sid-alice", "alice@housingbuddy.test")
	if code, _ := a.do(t, "GET", "/api/trash", "sid-alice", nil); code != 403 {
		t.Fatalf("user reached trash: %d", code)
	}
}

func TestPropertyValidationAndListing(t *testing.T) {
	a := newTestApp(t)
	a.adminLogin(t, "sid-admin")

	bad := newListing("")
	bad["deposit"] = -5
	code, body := a.do(t, "POST", "/api/properties", "sid-admin", bad)
	if code != 400 {
		t.Fatalf("invalid listing accepted: %d", code)
	}
	fields := body["fields"].(map[string]any)
	if fields["title"] == nil || fields["deposit"] == nil {
		t.Fatalf("field errors missing: %v", fields)
	}

	code, list := a.do(t, "GET", "/api/properties?category=%EC%98%A4%ED%94%BC%EC%8A%A4%ED%85%94", "sid-v", nil)
	if code != 200 || len(list["properties"].([]any)) != 1 {
		t.Fatalf("category filter: %d %v", code, list)
	}
	if code, _ := a.do(t, "GET", "/api/properties?q=%3Cscript%3E", "sid-v", nil); code != 400 {
		t.Fatalf("markup keyword accepted: %d", code)
	}
	// The listing page applies the same keyword and category rules.
	for _, path := range []string{"/?q=%3Cscript%3E", "/?category=%3Cb%3E"} {
		resp, page := a.raw(t, "GET", path, "sid-v", nil)
		if resp.StatusCode != 400 || strings.Contains(string(page), "역세권 풀옵션 원룸") || strings.Contains(string(page), "<script>") {
			t.Fatalf("%s: %d", path, resp.StatusCode)
		}
	}
	if code, _ := a.do(t, "GET", "/api/properties/abc", "sid-v", nil); code != 400 {
		t.Fatalf("non-numeric id: %d", code)
	}
}

func TestPropertyPageEscapesAndNotFound(t *testing.T) {
	a := newTestApp(t)
	a.adminLogin(t, "sid-admin")
	_, created := a.do(t, "POST", "/api/properties", "sid-admin", newListing(`<script>alert("x")</script>`))
	id := int64(created["id"].(float64))

	resp, body := a.raw(t, "GET", fmt.Sprintf("/p/%d", id), "sid-v", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("detail page: %d", resp.StatusCode)
	}
	page := string(body)
	if strings.Contains(page, `<script>alert`) {
		t.Fatal("listing title rendered unescaped")
	}
	if !strings.Contains(page, "&lt;script&gt;") {
		t.Fatalf("escaped title missing: %s", page)
	}

	resp, body = a.raw(t, "GET", "/p/9999", "sid-v", nil)
	if resp.StatusCode != 404 || !strings.Contains(string(body), "매물을 찾을 수 없습니다.") {
		t.Fatalf("missing property page: %d %s", resp.StatusCode, body)
	}

	resp, body = a.raw(t, "GET", "/", "sid-v", nil)
	if resp.StatusCode != 200 || !strings.Contains(string(body), "역세권 풀옵션 원룸") {
		t.Fatalf("home page: %d", resp.StatusCode)
	}
}
