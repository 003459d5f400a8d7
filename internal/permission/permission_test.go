package permission_test

import (
	"testing"

	"go-peoplehub/internal/permission"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanGiveFeedback(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	t.Run("no self feedback", func(t *testing.T) {
		actor := permission.Actor{ID: self, Role: permission.RoleEmployee}
		assert.False(t, permission.CanGiveFeedback(actor, self))
	})

	t.Run("manager cannot self feedback either", func(t *testing.T) {
		actor := permission.Actor{ID: self, Role: permission.RoleManager}
		assert.False(t, permission.CanGiveFeedback(actor, self))
	})

	t.Run("anyone else is allowed", func(t *testing.T) {
		actor := permission.Actor{ID: self, Role: permission.RoleEmployee}
		assert.True(t, permission.CanGiveFeedback(actor, other))
	})
}

func TestCanViewFeedback(t *testing.T) {
	giver := uuid.New()
	receiver := uuid.New()
	stranger := uuid.New()

	t.Run("receiver can view", func(t *testing.T) {
		actor := permission.Actor{ID: receiver, Role: permission.RoleEmployee}
		assert.True(t, permission.CanViewFeedback(actor, giver, receiver))
	})

	t.Run("giver can view", func(t *testing.T) {
		actor := permission.Actor{ID: giver, Role: permission.RoleEmployee}
		assert.True(t, permission.CanViewFeedback(actor, giver, receiver))
	})

	t.Run("manager can view", func(t *testing.T) {
		actor := permission.Actor{ID: stranger, Role: permission.RoleManager}
		assert.True(t, permission.CanViewFeedback(actor, giver, receiver))
	})

	t.Run("unrelated employee cannot view", func(t *testing.T) {
		actor := permission.Actor{ID: stranger, Role: permission.RoleEmployee}
		assert.False(t, permission.CanViewFeedback(actor, giver, receiver))
	})

	t.Run("unrelated coworker cannot view", func(t *testing.T) {
		actor := permission.Actor{ID: stranger, Role: permission.RoleCoworker}
		assert.False(t, permission.CanViewFeedback(actor, giver, receiver))
	})
}

func TestCanDeleteFeedback(t *testing.T) {
	giver := uuid.New()
	stranger := uuid.New()

	assert.True(t, permission.CanDeleteFeedback(permission.Actor{ID: giver, Role: permission.RoleEmployee}, giver))
	assert.True(t, permission.CanDeleteFeedback(permission.Actor{ID: stranger, Role: permission.RoleManager}, giver))
	assert.False(t, permission.CanDeleteFeedback(permission.Actor{ID: stranger, Role: permission.RoleEmployee}, giver))
}

func TestCanViewProfile(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	assert.True(t, permission.CanViewProfile(permission.Actor{ID: self, Role: permission.RoleEmployee}, self))
	assert.False(t, permission.CanViewProfile(permission.Actor{ID: self, Role: permission.RoleEmployee}, other))
	assert.True(t, permission.CanViewProfile(permission.Actor{ID: self, Role: permission.RoleCoworker}, other))
	assert.True(t, permission.CanViewProfile(permission.Actor{ID: self, Role: permission.RoleManager}, other))
}

func TestCanReviewAbsence(t *testing.T) {
	manager := uuid.New()
	employee := uuid.New()

	t.Run("manager reviews others", func(t *testing.T) {
		actor := permission.Actor{ID: manager, Role: permission.RoleManager}
		assert.True(t, permission.CanReviewAbsence(actor, employee))
	})

	t.Run("manager cannot review own request", func(t *testing.T) {
		actor := permission.Actor{ID: manager, Role: permission.RoleManager}
		assert.False(t, permission.CanReviewAbsence(actor, manager))
	})

	t.Run("employee cannot review", func(t *testing.T) {
		actor := permission.Actor{ID: employee, Role: permission.RoleEmployee}
		assert.False(t, permission.CanReviewAbsence(actor, manager))
	})
}
