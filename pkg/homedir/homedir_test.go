package homedir

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denysvitali/dirscope-runtime/pkg/fserr"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		env  MapEnv
		want string
	}{
		{
			name: "home wins over userprofile",
			env:  MapEnv{"HOME": "/home/alice", "USERPROFILE": `C:\Users\alice`},
			want: "/home/alice",
		},
		{
			name: "userprofile when home unset",
			env:  MapEnv{"USERPROFILE": `C:\Users\alice`},
			want: `C:\Users\alice`,
		},
		{
			name: "userprofile when home empty",
			env:  MapEnv{"HOME": "", "USERPROFILE": `C:\Users\bob`},
			want: `C:\Users\bob`,
		},
		{
			name: "value returned verbatim",
			env:  MapEnv{"HOME": "/home/alice/"},
			want: "/home/alice/",
		},
		{
			name: "nonexistent path is not checked",
			env:  MapEnv{"HOME": "/does/not/exist"},
			want: "/does/not/exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewResolver(tt.env).Resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Unavailable(t *testing.T) {
	for name, env := range map[string]MapEnv{
		"nothing set": {},
		"both empty":  {"HOME": "", "USERPROFILE": ""},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := NewResolver(env).Resolve()
			require.Error(t, err)
			assert.Empty(t, got)
			assert.True(t, errors.Is(err, fserr.ErrEnvironmentUnavailable))
			assert.Equal(t, "could not determine home directory", err.Error())
		})
	}
}

func TestResolve_ProcessEnv(t *testing.T) {
	t.Setenv("HOME", "/tmp/home-under-test")
	t.Setenv("USERPROFILE", "")

	got, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/home-under-test", got)
}

func TestNewResolver_Defaults(t *testing.T) {
	r := NewResolver(nil)
	assert.IsType(t, OSEnv{}, r.env)
}

func TestLookupOrder(t *testing.T) {
	order := LookupOrder()
	assert.Equal(t, []string{"HOME", "USERPROFILE"}, order)

	order[0] = "USERPROFILE"
	home, err := NewResolver(MapEnv{"HOME": "/home/alice", "USERPROFILE": `C:\Users\alice`}).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "/home/alice", home)
	assert.Equal(t, []string{"HOME", "USERPROFILE"}, LookupOrder())
}
