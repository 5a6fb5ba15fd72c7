package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"microblog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowUnfollowFlow(t *testing.T) {
	s, app, db, _ := newTestServer(t)
	alice, aliceToken := createActivatedUser(t, s, db, "alice", false)
	bob, _ := createActivatedUser(t, s, db, "bob", false)

	followPath := fmt.Sprintf("/api/users/%d/follow", bob.ID)
	statusPath := fmt.Sprintf("/api/users/%d/following-status", bob.ID)

	// Not following yet.
	resp, err := app.Test(jsonRequest(t, http.MethodGet, statusPath, nil, aliceToken))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var statusBody struct {
		Following bool `json:"following"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&statusBody))
	assert.False(t, statusBody.Following)

	// Follow, then follow again: both succeed, one edge.
	for i := 0; i < 2; i++ {
		resp, err = app.Test(jsonRequest(t, http.MethodPost, followPath, nil, aliceToken))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}

	var edgeCount int64
	db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", alice.ID, bob.ID).
		Count(&edgeCount)
	assert.Equal(t, int64(1), edgeCount)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, statusPath, nil, aliceToken))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&statusBody))
	assert.True(t, statusBody.Following)

	// Unfollow, then unfollow again: both succeed.
	for i := 0; i < 2; i++ {
		resp, err = app.Test(jsonRequest(t, http.MethodDelete, followPath, nil, aliceToken))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}

	resp, err = app.Test(jsonRequest(t, http.MethodGet, statusPath, nil, aliceToken))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&statusBody))
	assert.False(t, statusBody.Following)
}

func TestFollowSelfRejected(t *testing.T) {
	s, app, db, _ := newTestServer(t)
	alice, aliceToken := createActivatedUser(t, s, db, "alice", false)

	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/users/%d/follow", alice.ID), nil, aliceToken))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFollowUnknownUser(t *testing.T) {
	s, app, db, _ := newTestServer(t)
	_, aliceToken := createActivatedUser(t, s, db, "alice", false)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users/9999/follow", nil, aliceToken))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFollowMultipleTargets(t *testing.T) {
	s, app, db, _ := newTestServer(t)
	alice, aliceToken := createActivatedUser(t, s, db, "alice", false)
	bob, _ := createActivatedUser(t, s, db, "bob", false)
	carol, _ := createActivatedUser(t, s, db, "carol", false)

	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/users/%d/follow", bob.ID),
		map[string][]uint{"user_ids": {carol.ID, bob.ID}}, aliceToken))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var edgeCount int64
	db.Model(&models.Follow{}).Where("follower_id = ?", alice.ID).Count(&edgeCount)
	assert.Equal(t, int64(2), edgeCount)
}

func TestFollowersAndFollowingsEndpoints(t *testing.T) {
	s, app, db, _ := newTestServer(t)
	alice, aliceToken := createActivatedUser(t, s, db, "alice", false)
	_, bobToken := createActivatedUser(t, s, db, "bob", false)
	carol, carolToken := createActivatedUser(t, s, db, "carol", false)

	// bob and carol follow alice; alice follows carol.
	for _, tc := range []struct {
		token  string
		target uint
	}{
		{bobToken, alice.ID},
		{carolToken, alice.ID},
		{aliceToken, carol.ID},
	} {
		resp, err := app.Test(jsonRequest(t, http.MethodPost,
			fmt.Sprintf("/api/users/%d/follow", tc.target), nil, tc.token))
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	}

	var listBody struct {
		Users []models.User `json:"users"`
	}

	resp, err := app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/users/%d/followers", alice.ID), nil, ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listBody))
	require.Len(t, listBody.Users, 2)

	resp, err = app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/users/%d/followings", alice.ID), nil, ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listBody))
	require.Len(t, listBody.Users, 1)
	assert.Equal(t, "carol", listBody.Users[0].Name)
}
