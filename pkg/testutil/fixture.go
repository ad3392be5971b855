package testutil

import (
	"context"

	"github.com/pointpass/backend/internal/entity"
	"github.com/pointpass/backend/pkg/xcontext"
)

var (
	User1 = entity.User{
		Base:         entity.Base{ID: "user1"},
		AuthSubject:  "did:privy:user1",
		SocialID:     "1000000000000000001",
		Username:     "alice",
		Points:       500,
		ReferralCode: "ALICE234",
	}

	User2 = entity.User{
		Base:         entity.Base{ID: "user2"},
		AuthSubject:  "did:privy:user2",
		SocialID:     "1000000000000000002",
		Username:     "bob",
		Points:       500,
		ReferralCode: "BOB23456",
	}

	User3 = entity.User{
		Base:         entity.Base{ID: "user3"},
		AuthSubject:  "did:privy:user3",
		SocialID:     "1000000000000000003",
		Username:     "carol",
		Points:       100,
		ReferralCode: "CAROL234",
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
}

func InsertUsers(ctx context.Context) {
	for _, user := range []entity.User{User1, User2, User3} {
		user := user
		if err := xcontext.DB(ctx).Create(&user).Error; err != nil {
			panic(err)
		}
	}
}
