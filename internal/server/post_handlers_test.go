package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// createPost authors a post over the API and returns its ID.
func createPost(t *testing.T, app *fiber.App, token, title string) uint {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/posts/", token, map[string]any{
		"title":     title,
		"content":   "Some long enough body text for the post.",
		"image_url": "https://cdn.example.com/cover.png",
	})
	if status != http.StatusCreated {
		t.Fatalf("create post %q: expected 201, got %d (%v)", title, status, body)
	}
	post, _ := body["post"].(map[string]any)
	id, _ := post["id"].(float64)
	if id == 0 {
		t.Fatalf("create post %q: missing id in %v", title, body)
	}
	return uint(id)
}

func postField(t *testing.T, body map[string]any, key, field string) any {
	t.Helper()
	post, ok := body[key].(map[string]any)
	if !ok {
		t.Fatalf("missing %q object in %v", key, body)
	}
	return post[field]
}

func TestEngagementFlow(t *testing.T) {
	t.Parallel()
	_, app := setupServerTest(t)

	_, aliceToken := registerUser(t, app, "alice", "alice@example.com")
	_, bobToken := registerUser(t, app, "bob", "bob@example.com")

	postID := createPost(t, app, aliceToken, "Concurrency Patterns")

	// Bob likes the post.
	status, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/posts/like/%d", postID), bobToken, nil)
	if status != http.StatusOK {
		t.Fatalf("like: expected 200, got %d (%v)", status, body)
	}
	if got := postField(t, body, "post", "likes_count"); got != float64(1) {
		t.Fatalf("after like: expected likes_count 1, got %v", got)
	}
	if got := postField(t, body, "post", "liked"); got != true {
		t.Fatalf("after like: expected liked true, got %v", got)
	}

	// Disliking replaces the like rather than adding a second reaction.
	status, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/posts/dislike/%d", postID), bobToken, nil)
	if status != http.StatusOK {
		t.Fatalf("dislike: expected 200, got %d (%v)", status, body)
	}
	if got := postField(t, body, "post", "likes_count"); got != float64(0) {
		t.Fatalf("after dislike: expected likes_count 0, got %v", got)
	}
	if got := postField(t, body, "post", "dislikes_count"); got != float64(1) {
		t.Fatalf("after dislike: expected dislikes_count 1, got %v", got)
	}
	if got := postField(t, body, "post", "disliked"); got != true {
		t.Fatalf("after dislike: expected disliked true, got %v", got)
	}

	// Claps accumulate on every call.
	for i := 0; i < 3; i++ {
		status, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/posts/claps/%d", postID), bobToken, nil)
		if status != http.StatusOK {
			t.Fatalf("clap %d: expected 200, got %d (%v)", i, status, body)
		}
	}
	if got := postField(t, body, "updatedPost", "claps"); got != float64(3) {
		t.Fatalf("after 3 claps: expected claps 3, got %v", got)
	}

	// Views count once per user no matter how often recorded.
	for i := 0; i < 2; i++ {
		status, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d/post-view-count", postID), bobToken, nil)
		if status != http.StatusOK {
			t.Fatalf("view %d: expected 200, got %d (%v)", i, status, body)
		}
	}
	if got := postField(t, body, "post", "views_count"); got != float64(1) {
		t.Fatalf("after repeat views: expected views_count 1, got %v", got)
	}
}

func TestFeedHidesBlockedViewer(t *testing.T) {
	t.Parallel()
	_, app := setupServerTest(t)

	aliceID, aliceToken := registerUser(t, app, "alice", "alice@example.com")
	bobID, bobToken := registerUser(t, app, "bob", "bob@example.com")

	createPost(t, app, aliceToken, "Alice Writes")
	createPost(t, app, bobToken, "Bob Writes")

	// Alice blocks Bob. Bob's feed loses Alice's posts; Alice still sees
	// Bob's because blocking is one-directional.
	status, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/users/block/%d", bobID), aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("block: expected 200, got %d (%v)", status, body)
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/posts/", bobToken, nil)
	if status != http.StatusOK {
		t.Fatalf("bob feed: expected 200, got %d (%v)", status, body)
	}
	bobFeed, _ := body["allPosts"].([]any)
	for _, raw := range bobFeed {
		post, _ := raw.(map[string]any)
		if authorID, _ := post["author_id"].(float64); uint(authorID) == aliceID {
			t.Fatalf("bob's feed still contains alice's post: %v", post["title"])
		}
	}
	if len(bobFeed) != 1 {
		t.Fatalf("bob's feed: expected only his own post, got %d posts", len(bobFeed))
	}

	status, body = doJSON(t, app, http.MethodGet, "/api/v1/posts/", aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("alice feed: expected 200, got %d (%v)", status, body)
	}
	aliceFeed, _ := body["allPosts"].([]any)
	if len(aliceFeed) != 2 {
		t.Fatalf("alice's feed: expected both posts, got %d", len(aliceFeed))
	}

	// Unblocking restores bob's view.
	status, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/users/unblock/%d", bobID), aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("unblock: expected 200, got %d", status)
	}
	status, body = doJSON(t, app, http.MethodGet, "/api/v1/posts/", bobToken, nil)
	if status != http.StatusOK {
		t.Fatalf("bob feed after unblock: expected 200, got %d", status)
	}
	bobFeed, _ = body["allPosts"].([]any)
	if len(bobFeed) != 2 {
		t.Fatalf("bob's feed after unblock: expected 2 posts, got %d", len(bobFeed))
	}
}

func TestPostCRUDOverHTTP(t *testing.T) {
	t.Parallel()
	_, app := setupServerTest(t)

	_, aliceToken := registerUser(t, app, "alice", "alice@example.com")
	_, bobToken := registerUser(t, app, "bob", "bob@example.com")

	postID := createPost(t, app, aliceToken, "Original Title")

	// Duplicate title is rejected for everyone.
	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/posts/", bobToken, map[string]any{
		"title":     "Original Title",
		"content":   "different body",
		"image_url": "https://cdn.example.com/other.png",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate title: expected 409, got %d", status)
	}

	// Partial update: only the title changes.
	status, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d", postID), aliceToken, map[string]any{
		"title": "Renamed Title",
	})
	if status != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%v)", status, body)
	}
	if got := postField(t, body, "updatedPost", "title"); got != "Renamed Title" {
		t.Fatalf("expected renamed title, got %v", got)
	}
	if got := postField(t, body, "updatedPost", "image_url"); got != "https://cdn.example.com/cover.png" {
		t.Fatalf("expected untouched image_url, got %v", got)
	}

	// Non-authors cannot update or delete.
	status, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d", postID), bobToken, map[string]any{
		"title": "Hijacked",
	})
	if status != http.StatusForbidden {
		t.Fatalf("foreign update: expected 403, got %d", status)
	}
	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", postID), bobToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("foreign delete: expected 403, got %d", status)
	}

	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d", postID), aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", status)
	}
	status, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", postID), aliceToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("deleted post fetch: expected 404, got %d", status)
	}
}

func TestSchedulePublishOverHTTP(t *testing.T) {
	t.Parallel()
	_, app := setupServerTest(t)

	_, aliceToken := registerUser(t, app, "alice", "alice@example.com")
	_, bobToken := registerUser(t, app, "bob", "bob@example.com")

	postID := createPost(t, app, aliceToken, "Scheduled Piece")

	status, body := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/posts/schedule/%d", postID), aliceToken, map[string]any{
		"scheduled_publish": "2099-01-02T15:04:05Z",
	})
	if status != http.StatusOK {
		t.Fatalf("schedule: expected 200, got %d (%v)", status, body)
	}

	// A future-dated post vanishes from feeds but stays fetchable by ID.
	status, body = doJSON(t, app, http.MethodGet, "/api/v1/posts/", bobToken, nil)
	if status != http.StatusOK {
		t.Fatalf("feed: expected 200, got %d", status)
	}
	if feed, _ := body["allPosts"].([]any); len(feed) != 0 {
		t.Fatalf("expected scheduled post hidden from feed, got %d posts", len(feed))
	}
	status, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", postID), aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("direct fetch: expected 200, got %d", status)
	}

	// Past timestamps are rejected.
	status, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/posts/schedule/%d", postID), aliceToken, map[string]any{
		"scheduled_publish": "2001-01-02T15:04:05Z",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("past schedule: expected 400, got %d", status)
	}
}
