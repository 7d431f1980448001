package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTokens is a TokenSource with a fixed token. Empty means absent.
type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, bool) {
	return s.token, s.token != ""
}

type mutableTokens struct {
	token string
}

func (m *mutableTokens) Token() (string, bool) {
	return m.token, m.token != ""
}

func TestClient_AuthInjection(t *testing.T) {
	t.Run("attaches bearer token when one is stored", func(t *testing.T) {
		var gotAuth, gotRequestID string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotRequestID = r.Header.Get("X-Request-Id")
			w.Write([]byte(`{"data":{"_id":"u-1","fullName":"Asha","email":"a@b.com","role":"admin"}}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticTokens{token: "t1"})
		user, err := client.Me(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "Bearer t1", gotAuth)
		assert.NotEmpty(t, gotRequestID)
		assert.Equal(t, "u-1", user.ID)
	})

	t.Run("sends unauthenticated when no token is stored", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticTokens{})
		err := client.RequestOTP(context.Background(), "a@b.com")
		require.NoError(t, err)

		assert.Empty(t, gotAuth)
	})

	t.Run("consults the token source per request", func(t *testing.T) {
		var auths []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auths = append(auths, r.Header.Get("Authorization"))
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		tokens := &mutableTokens{token: "t1"}
		client := NewClient(srv.URL, tokens)

		require.NoError(t, client.RequestOTP(context.Background(), "a@b.com"))
		tokens.token = ""
		require.NoError(t, client.RequestOTP(context.Background(), "a@b.com"))

		require.Len(t, auths, 2)
		assert.Equal(t, "Bearer t1", auths[0])
		assert.Empty(t, auths[1])
	})
}

func TestClient_ErrorNormalization(t *testing.T) {
	t.Run("backend message field wins", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"Email is required"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticTokens{})
		err := client.RequestOTP(context.Background(), "")
		require.Error(t, err)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Email is required", apiErr.Message)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	})

	t.Run("generic message when the body has none", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`oops`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticTokens{})
		err := client.RequestOTP(context.Background(), "a@b.com")
		require.Error(t, err)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Contains(t, apiErr.Message, "request failed")
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	})

	t.Run("transport failure yields a normalized error with no status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused

		client := NewClient(srv.URL, staticTokens{})
		err := client.RequestOTP(context.Background(), "a@b.com")
		require.Error(t, err)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.NotEmpty(t, apiErr.Message)
		assert.Zero(t, apiErr.Status)
	})
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"401 status", &Error{Message: "anything", Status: 401}, true},
		{"unauthorized message", &Error{Message: "Unauthorized"}, true},
		{"access denied message", &Error{Message: "Access denied: admin role required", Status: 403}, true},
		{"validation error", &Error{Message: "Email is required", Status: 400}, false},
		{"transport error", &Error{Message: "connection refused"}, false},
		{"not an api error", os.ErrNotExist, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAuthError(tt.err))
		})
	}
}

func TestClient_Login(t *testing.T) {
	t.Run("verify otp returns flat token and user", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/auth/verify-otp", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.Write([]byte(`{"token":"t1","user":{"_id":"u-1","email":"a@b.com","role":"admin"}}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticTokens{})
		resp, err := client.VerifyOTP(context.Background(), "a@b.com", "123456")
		require.NoError(t, err)
		assert.Equal(t, "t1", resp.Token)
		require.NotNil(t, resp.User)
		assert.Equal(t, "admin", resp.User.Role)
	})

	t.Run("password login posts credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
			w.Write([]byte(`{"token":"t2","user":{"_id":"u-2","email":"a@b.com","role":"nomad"}}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticTokens{})
		resp, err := client.LoginWithPassword(context.Background(), "a@b.com", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "t2", resp.Token)
	})
}

func TestClient_Lists(t *testing.T) {
	t.Run("unwraps data and pagination", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/user/nomads", r.URL.Path)
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			w.Write([]byte(`{
				"data":[{"_id":"u-1","fullName":"A","role":"nomad"},{"_id":"u-2","fullName":"B","role":"nomad"}],
				"pagination":{"page":2,"limit":10,"total":42,"totalPages":5}
			}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticTokens{token: "t1"})
		users, page, err := client.ListNomads(context.Background(), ListOptions{Page: 2, Limit: 10})
		require.NoError(t, err)

		require.Len(t, users, 2)
		assert.Equal(t, "u-1", users[0].ID)
		require.NotNil(t, page)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 42, page.Total)
		assert.Equal(t, 5, page.TotalPages)
	})

	t.Run("missing pagination yields nil cursor", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[]}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticTokens{token: "t1"})
		items, page, err := client.ListDraftItineraries(context.Background(), ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Nil(t, page)
	})
}

func TestClient_Actions(t *testing.T) {
	t.Run("disable itinerary sends the reason", func(t *testing.T) {
		var gotMethod, gotPath, gotBody string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			buf := make([]byte, r.ContentLength)
			r.Body.Read(buf)
			gotBody = string(buf)
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticTokens{token: "t1"})
		err := client.DisableItinerary(context.Background(), "it-1", "copyright claim")
		require.NoError(t, err)

		assert.Equal(t, http.MethodPatch, gotMethod)
		assert.Equal(t, "/api/v1/itinerary/it-1/disable", gotPath)
		assert.Contains(t, gotBody, "copyright claim")
	})

	t.Run("create review unwraps the pending entry", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/itinerary/it-1/review", r.URL.Path)
			w.Write([]byte(`{"data":{"_id":"rev-1","itinerary":"it-1","rating":4,"status":"pending"}}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticTokens{token: "t1"})
		review, err := client.CreateReview(context.Background(), "it-1", 4, "lovely route")
		require.NoError(t, err)
		require.NotNil(t, review)
		assert.Equal(t, "pending", review.Status)
	})

	t.Run("like toggles without a body", func(t *testing.T) {
		var gotMethod, gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticTokens{token: "t1"})
		require.NoError(t, client.LikeItinerary(context.Background(), "it-1"))
		assert.Equal(t, http.MethodPatch, gotMethod)
		assert.Equal(t, "/api/v1/itinerary/it-1/like", gotPath)
	})

	t.Run("reject review targets the nested path", func(t *testing.T) {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticTokens{token: "t1"})
		err := client.RejectReview(context.Background(), "it-1", "rev-9", "spam")
		require.NoError(t, err)
		assert.Equal(t, "/api/v1/itinerary/it-1/review/rev-9/reject", gotPath)
	})
}

func TestClient_Upload(t *testing.T) {
	t.Run("single upload overrides content type per call", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "photo.jpg")
		require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0600))

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/upload/single", r.URL.Path)
			assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

			require.NoError(t, r.ParseMultipartForm(1<<20))
			_, header, err := r.FormFile("file")
			require.NoError(t, err)
			assert.Equal(t, "photo.jpg", header.Filename)

			w.Write([]byte(`{"data":{"url":"https://cdn.nomanion.com/photo.jpg"}}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticTokens{token: "t1"})
		upload, err := client.UploadFile(context.Background(), path)
		require.NoError(t, err)
		require.NotNil(t, upload)
		assert.Equal(t, "https://cdn.nomanion.com/photo.jpg", upload.URL)
	})

	t.Run("multiple uploads share the media field", func(t *testing.T) {
		dir := t.TempDir()
		paths := []string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.jpg")}
		for _, p := range paths {
			require.NoError(t, os.WriteFile(p, []byte("x"), 0600))
		}

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Len(t, r.MultipartForm.File["media"], 2)
			w.Write([]byte(`{"data":[{"url":"a"},{"url":"b"}]}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, staticTokens{token: "t1"})
		uploads, err := client.UploadFiles(context.Background(), paths)
		require.NoError(t, err)
		assert.Len(t, uploads, 2)
	})

	t.Run("missing file fails before any request", func(t *testing.T) {
		client := NewClient("https://unreachable.invalid", staticTokens{})
		_, err := client.UploadFile(context.Background(), "/does/not/exist.jpg")
		assert.ErrorContains(t, err, "open upload")
	})
}

func TestNewCachingHTTPClient(t *testing.T) {
	t.Run("memory cache without a directory", func(t *testing.T) {
		client := NewCachingHTTPClient("")
		assert.NotNil(t, client.Transport)
	})

	t.Run("disk cache with a directory", func(t *testing.T) {
		client := NewCachingHTTPClient(t.TempDir())
		assert.NotNil(t, client.Transport)
	})
}
