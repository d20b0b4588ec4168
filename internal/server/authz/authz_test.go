package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/filehost/internal/server/models"
)

func TestCanReadFile(t *testing.T) {
	owner := Principal{UserID: 1}
	stranger := Principal{UserID: 2}
	admin := Principal{UserID: 3, IsAdmin: true}

	public := &models.File{ID: 10, UserID: 1, IsPublic: true}
	private := &models.File{ID: 11, UserID: 1, IsPublic: false}

	tests := []struct {
		name string
		p    Principal
		f    *models.File
		want bool
	}{
		{"owner reads own private file", owner, private, true},
		{"owner reads own public file", owner, public, true},
		{"stranger reads public file", stranger, public, true},
		{"stranger denied private file", stranger, private, false},
		{"anonymous reads public file", Anonymous, public, true},
		{"anonymous denied private file", Anonymous, private, false},
		{"admin role grants no read access", admin, private, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanReadFile(tc.p, tc.f))
		})
	}
}

func TestCanModifyFile(t *testing.T) {
	private := &models.File{ID: 11, UserID: 1}

	assert.True(t, CanModifyFile(Principal{UserID: 1}, private))
	assert.False(t, CanModifyFile(Principal{UserID: 2}, private))
	assert.False(t, CanModifyFile(Anonymous, private))
	// admins get no special file powers
	assert.False(t, CanModifyFile(Principal{UserID: 3, IsAdmin: true}, private))
}

func TestCanManageApps(t *testing.T) {
	assert.True(t, CanManageApps(Principal{UserID: 1, IsAdmin: true}))
	assert.False(t, CanManageApps(Principal{UserID: 1}))
	assert.False(t, CanManageApps(Anonymous))
}
