package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tidegoods/storefront/internal/storefront/platform/requestmeta"
)

func TestReadMissingCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := Read(r); ok {
		t.Fatal("Read reported a cookie on a bare request")
	}
}

func TestReadTrimsValue(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: Name, Value: "sess-123"})

	got, ok := Read(r)
	if !ok {
		t.Fatal("Read did not find the session cookie")
	}
	if got != "sess-123" {
		t.Fatalf("Read = %q, want %q", got, "sess-123")
	}
}

func TestReadEmptyValue(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: Name, Value: "  "})

	if _, ok := Read(r); ok {
		t.Fatal("Read accepted a blank cookie value")
	}
}

func TestWriteSetsCookie(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)

	Write(w, r, "sess-42")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != Name {
		t.Fatalf("cookie name = %q, want %q", cookie.Name, Name)
	}
	if cookie.Value != "sess-42" {
		t.Fatalf("cookie value = %q, want %q", cookie.Value, "sess-42")
	}
	if !cookie.HttpOnly {
		t.Fatal("cookie is not HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie SameSite = %v, want lax", cookie.SameSite)
	}
	if cookie.Secure {
		t.Fatal("cookie marked Secure over plain HTTP")
	}
}

func TestWriteSecureBehindTrustedProxy(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")

	WriteWithPolicy(w, r, "sess-42", requestmeta.SchemePolicy{TrustForwardedProto: true})

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	if !cookies[0].Secure {
		t.Fatal("cookie not Secure behind trusted HTTPS proxy")
	}
}

func TestClearExpiresCookie(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)

	Clear(w, r)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Fatalf("cookie MaxAge = %d, want negative", cookies[0].MaxAge)
	}
}
