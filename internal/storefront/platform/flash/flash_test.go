package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteAndReadAndClearRoundTrip(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	writeRR := httptest.NewRecorder()

	Write(writeRR, req, NoticeSuccess("Order placed."))
	cookies := writeRR.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}

	readReq := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	readReq.AddCookie(cookies[0])
	readRR := httptest.NewRecorder()

	notice, ok := ReadAndClear(readRR, readReq)
	if !ok {
		t.Fatal("ReadAndClear did not find the notice")
	}
	if notice.Kind != KindSuccess {
		t.Fatalf("notice kind = %q, want %q", notice.Kind, KindSuccess)
	}
	if notice.Message != "Order placed." {
		t.Fatalf("notice message = %q, want %q", notice.Message, "Order placed.")
	}

	cleared := readRR.Result().Cookies()
	if len(cleared) != 1 {
		t.Fatalf("clear cookies = %d, want 1", len(cleared))
	}
	if cleared[0].MaxAge >= 0 {
		t.Fatalf("clear cookie MaxAge = %d, want negative", cleared[0].MaxAge)
	}
}

func TestReadAndClearMissingCookie(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	if _, ok := ReadAndClear(rr, req); ok {
		t.Fatal("ReadAndClear reported a notice on a bare request")
	}
}

func TestReadAndClearRejectsMalformedCookie(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-base64!!"})
	rr := httptest.NewRecorder()

	if _, ok := ReadAndClear(rr, req); ok {
		t.Fatal("ReadAndClear accepted a malformed cookie")
	}
}

func TestWriteDropsEmptyMessage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	Write(rr, req, Notice{Kind: KindInfo, Message: "  "})

	if got := len(rr.Result().Cookies()); got != 0 {
		t.Fatalf("cookies = %d, want 0", got)
	}
}

func TestWriteDropsUnknownKind(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	Write(rr, req, Notice{Kind: "shout", Message: "hello"})

	if got := len(rr.Result().Cookies()); got != 0 {
		t.Fatalf("cookies = %d, want 0", got)
	}
}
