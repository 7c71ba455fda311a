package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	cases := map[string]string{
		"1990-04-12":                "1990-04-12",
		"1990-04-12T23:15:00Z":      "1990-04-12",
		"1990-04-12T08:00:00+02:00": "1990-04-12",
	}
	for in, want := range cases {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got.String())
	}

	_, err := ParseDate("12/04/1990")
	require.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"dob":"2001-02-03"}`), &u))
	require.NotNil(t, u.DOB)
	require.Equal(t, time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC), u.DOB.Time)

	var empty User
	require.NoError(t, json.Unmarshal([]byte(`{"dob":null}`), &empty))
	require.Nil(t, empty.DOB)

	var blank User
	require.NoError(t, json.Unmarshal([]byte(`{"dob":""}`), &blank))
	require.Nil(t, blank.DOB)

	require.Error(t, json.Unmarshal([]byte(`{"dob":19900412}`), &u))
}

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	dob := NewDate(time.Date(1999, 12, 31, 18, 0, 0, 0, time.UTC))
	body, err := json.Marshal(User{Email: "a@x.com", PasswordHash: "$2a$10$secret", DOB: &dob})
	require.NoError(t, err)
	require.NotContains(t, strings.ToLower(string(body)), "password")
	require.Contains(t, string(body), `"dob":"1999-12-31"`)
}

func TestRoleOrDefault(t *testing.T) {
	require.Equal(t, RoleUser, RoleOrDefault(""))
	require.Equal(t, RoleAdmin, RoleOrDefault(RoleAdmin))
}
