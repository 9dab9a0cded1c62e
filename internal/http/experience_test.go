package http_test

import (
	"fmt"
	nethttp "net/http"
	"testing"
)

func (e *testEnv) postExperience(ck *nethttp.Cookie, body string) []string {
	e.t.Helper()
	w := e.do("POST", "/postExperience", body, []*nethttp.Cookie{ck})
	var resp struct {
		Success     bool     `json:"success"`
		Experiences []string `json:"experiences"`
	}
	decodeJSON(e.t, w, &resp)
	if !resp.Success {
		e.t.Fatalf("postExperience: %s", w.Body.String())
	}
	return resp.Experiences
}

func TestPostExperienceListsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ck := env.signUp("ann@example.com", "pw123456", "Ann")

	for i := 0; i < 3; i++ {
		env.postExperience(ck, fmt.Sprintf(`{"title":"trip %d","images":[]}`, i))
	}

	w := env.do("GET", "/myExperiences", "", []*nethttp.Cookie{ck})
	var resp struct {
		Experiences []map[string]any `json:"experiences"`
	}
	decodeJSON(t, w, &resp)
	if len(resp.Experiences) != 3 {
		t.Fatalf("got %d experiences", len(resp.Experiences))
	}
	for i, p := range resp.Experiences {
		want := fmt.Sprintf("trip %d", 2-i)
		if p["title"] != want {
			t.Fatalf("position %d: title=%v want %s", i, p["title"], want)
		}
		if p["userEmail"] != "ann@example.com" || p["postId"] == nil || p["datePosted"] == nil {
			t.Fatalf("post missing stamped fields: %v", p)
		}
	}
}

func TestExperiencePagination(t *testing.T) {
	env := newTestEnv(t)
	ck := env.signUp("pager@example.com", "pw123456", "Pager")

	for i := 0; i < 12; i++ {
		env.postExperience(ck, fmt.Sprintf(`{"title":"t%d"}`, i))
	}

	var resp struct {
		Experiences []map[string]any `json:"experiences"`
	}

	w := env.do("GET", "/myExperiences", "", []*nethttp.Cookie{ck})
	decodeJSON(t, w, &resp)
	if len(resp.Experiences) != 10 || resp.Experiences[0]["title"] != "t11" {
		t.Fatalf("first page: len=%d first=%v", len(resp.Experiences), resp.Experiences)
	}

	w = env.do("GET", "/myExperiences?index=10", "", []*nethttp.Cookie{ck})
	decodeJSON(t, w, &resp)
	if len(resp.Experiences) != 2 || resp.Experiences[0]["title"] != "t1" {
		t.Fatalf("second page: len=%d", len(resp.Experiences))
	}

	// Out of range pages come back empty, not erroring.
	w = env.do("GET", "/myExperiences?index=100", "", []*nethttp.Cookie{ck})
	decodeJSON(t, w, &resp)
	if len(resp.Experiences) != 0 {
		t.Fatalf("out-of-range page not empty: %v", resp.Experiences)
	}
}

func TestUserExperiencesByID(t *testing.T) {
	env := newTestEnv(t)
	ck := env.signUp("owner@example.com", "pw123456", "Owner")
	viewer := env.signUp("viewer@example.com", "pw123456", "Viewer")
	env.postExperience(ck, `{"title":"visible"}`)

	w := env.do("GET", "/"+env.userID("owner@example.com")+"/experiences", "", []*nethttp.Cookie{viewer})
	var resp struct {
		Experiences []map[string]any `json:"experiences"`
	}
	decodeJSON(t, w, &resp)
	if len(resp.Experiences) != 1 || resp.Experiences[0]["title"] != "visible" {
		t.Fatalf("user experiences: %s", w.Body.String())
	}

	w = env.do("GET", "/bbbbbbbbbbbbbbbbbbbbbbbb/experiences", "", []*nethttp.Cookie{viewer})
	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("unknown user code=%d", w.Code)
	}
}

func TestDeleteExperienceUnlinksButKeepsPost(t *testing.T) {
	env := newTestEnv(t)
	ck := env.signUp("del@example.com", "pw123456", "Del")

	env.postExperience(ck, `{"title":"keep"}`)
	ids := env.postExperience(ck, `{"title":"drop"}`)
	dropID := ids[0] // newest first

	w := env.do("DELETE", "/experience/"+dropID, "", []*nethttp.Cookie{ck})
	var resp struct {
		Experiences []string `json:"experiences"`
	}
	decodeJSON(t, w, &resp)
	if len(resp.Experiences) != 1 {
		t.Fatalf("experiences after delete: %v", resp.Experiences)
	}

	// The post document itself survives the unlink.
	if len(env.store.posts) != 2 {
		t.Fatalf("post document deleted, have %d", len(env.store.posts))
	}
}

func TestTimeline(t *testing.T) {
	env := newTestEnv(t)
	reader := env.signUp("reader@example.com", "pw123456", "Reader")
	writer := env.signUp("writer@example.com", "pw123456", "Writer")
	other := env.signUp("other@example.com", "pw123456", "Other")

	var resp struct {
		Posts []struct {
			Post map[string]any `json:"post"`
			User struct {
				Name string `json:"name"`
			} `json:"user"`
		} `json:"posts"`
	}

	// Following nobody means an empty timeline.
	w := env.do("GET", "/timeline", "", []*nethttp.Cookie{reader})
	decodeJSON(t, w, &resp)
	if len(resp.Posts) != 0 {
		t.Fatalf("empty follow set produced posts: %s", w.Body.String())
	}

	env.do("GET", "/followUser/"+env.userID("writer@example.com"), "", []*nethttp.Cookie{reader})

	for i := 0; i < 25; i++ {
		env.postExperience(writer, fmt.Sprintf(`{"title":"w%d"}`, i))
	}
	env.postExperience(other, `{"title":"unfollowed"}`)

	w = env.do("GET", "/timeline", "", []*nethttp.Cookie{reader})
	decodeJSON(t, w, &resp)
	if len(resp.Posts) != 20 {
		t.Fatalf("first page len=%d", len(resp.Posts))
	}
	if resp.Posts[0].Post["title"] != "w24" || resp.Posts[0].User.Name != "Writer" {
		t.Fatalf("first entry: %+v", resp.Posts[0])
	}
	for _, e := range resp.Posts {
		if e.Post["userEmail"] == "other@example.com" {
			t.Fatal("timeline leaked a post from an unfollowed user")
		}
	}

	w = env.do("GET", "/timeline?index=20", "", []*nethttp.Cookie{reader})
	decodeJSON(t, w, &resp)
	if len(resp.Posts) != 5 || resp.Posts[0].Post["title"] != "w4" {
		t.Fatalf("second page: len=%d", len(resp.Posts))
	}
}

func TestPhotoRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ck := env.signUp("pix@example.com", "pw123456", "Pix")

	// "aGVsbG8=" is base64 for "hello".
	env.postExperience(ck, `{"title":"pic","images":["data:image/png;base64,aGVsbG8="]}`)

	p := env.store.posts[0]
	imgs := p.Body["images"].([]any)
	photoID, _ := imgs[0].(string)
	if photoID == "" {
		t.Fatalf("image not rewritten to a photo id: %v", imgs)
	}

	w := env.do("GET", "/photo/"+photoID, "", []*nethttp.Cookie{ck})
	if w.Code != nethttp.StatusOK || w.Body.String() != "hello" {
		t.Fatalf("photo bytes code=%d body=%q", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}

	// Malformed ids end the request quietly; unknown ids are a 404.
	w = env.do("GET", "/photo/nope", "", []*nethttp.Cookie{ck})
	if w.Code != nethttp.StatusOK || w.Body.Len() != 0 {
		t.Fatalf("malformed id code=%d body=%q", w.Code, w.Body.String())
	}
	w = env.do("GET", "/photo/bbbbbbbbbbbbbbbbbbbbbbbb", "", []*nethttp.Cookie{ck})
	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("unknown photo code=%d", w.Code)
	}
}
