// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"bytes"
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypersdk/chain/chaintest"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/codec/codectest"
	"github.com/ava-labs/hypersdk/crypto/ed25519"
	"github.com/ava-labs/hypersdk/state"
	"github.com/ava-labs/hypersdk/utils"

	"github.com/DaiChronicles/treasuryvm/consts"
	"github.com/DaiChronicles/treasuryvm/storage"
)

func TestPurchaseCollectible(t *testing.T) {
	require := require.New(t)

	admin := codectest.NewRandomAddress()
	liquidityAgent := codectest.NewRandomAddress()
	treasurerAgent := codectest.NewRandomAddress()
	treasury := codectest.NewRandomAddress()
	buyer := codectest.NewRandomAddress()

	// The content agent holds the voucher signing key.
	signerKey, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	signer := signerKey.PublicKey()
	contentAgent := codec.CreateAddress(consts.ED25519ID, utils.ToID(signer[:]))

	strangerKey, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	stranger := strangerKey.PublicKey()

	mu := chaintest.NewInMemoryStore()
	authority := seedAuthority(t, mu, admin, contentAgent, liquidityAgent, treasurerAgent, treasury)
	seedCoin(t, mu)
	fundCoin(t, mu, buyer, 2_000)

	perspective := []byte("A windmill at dusk")
	now := int64(dayMs)
	expiry := int64(2 * dayMs)

	voucher := &PurchaseCollectible{
		Authority:   authority,
		Treasury:    treasury,
		Perspective: perspective,
		Price:       1_000,
		Expiry:      expiry,
		Signer:      signer,
	}
	voucher.Signature = ed25519.Sign(voucher.VoucherMessage(), signerKey)
	item := voucher.Item()

	forged := &PurchaseCollectible{
		Authority:   authority,
		Treasury:    treasury,
		Perspective: perspective,
		Price:       1, // not what the agent signed
		Expiry:      expiry,
		Signer:      signer,
		Signature:   voucher.Signature,
	}

	foreign := &PurchaseCollectible{
		Authority:   authority,
		Treasury:    treasury,
		Perspective: perspective,
		Price:       1_000,
		Expiry:      expiry,
		Signer:      stranger,
	}
	foreign.Signature = ed25519.Sign(foreign.VoucherMessage(), strangerKey)

	tests := []chaintest.ActionTest{
		{
			Name:        "Expired vouchers are rejected",
			Action:      voucher,
			ExpectedErr: ErrOutputVoucherExpired,
			State:       mu,
			Timestamp:   expiry + 1,
			Actor:       buyer,
		},
		{
			Name:        "Tampered vouchers fail verification",
			Action:      forged,
			ExpectedErr: ErrOutputInvalidSignature,
			State:       mu,
			Timestamp:   now,
			Actor:       buyer,
		},
		{
			Name:        "Vouchers from other keys are rejected",
			Action:      foreign,
			ExpectedErr: ErrOutputSignerNotContentAgent,
			State:       mu,
			Timestamp:   now,
			Actor:       buyer,
		},
		{
			// 30% burned, 20% booked as open reward, the rest to the
			// treasury.
			Name:            "Purchase mints the item and splits the price",
			Action:          voucher,
			ExpectedOutputs: [][]byte{item[:]},
			State:           mu,
			Timestamp:       now,
			Actor:           buyer,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				require.Equal(uint64(1_000), coinBalance(t, m, buyer))
				require.Equal(uint64(500), coinBalance(t, m, treasury))
				require.Equal(uint64(200), coinBalance(t, m, storage.RewardVaultAddress))

				_, _, _, _, totalSupply, _, err := storage.GetTokenInfoNoController(ctx, m, storage.CoinAddress)
				require.NoError(err)
				require.Equal(uint64(1_700), totalSupply)

				openReward, openToClaim, released, err := storage.GetRewardTotalsNoController(ctx, m)
				require.NoError(err)
				require.Equal(uint64(200), openReward)
				require.Zero(openToClaim)
				require.Zero(released)

				owner, stored, lastUpdate, err := storage.GetCollectibleNoController(ctx, m, item)
				require.NoError(err)
				require.Equal(buyer, owner)
				require.True(bytes.Equal(perspective, stored))
				require.Equal(now, lastUpdate)
			},
		},
		{
			Name:        "A voucher spends exactly once",
			Action:      voucher,
			ExpectedErr: ErrOutputCollectibleExists,
			State:       mu,
			Timestamp:   now + 1,
			Actor:       buyer,
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}

	// Curation of the purchased item.
	revision := []byte("A windmill at dawn")
	curationTests := []chaintest.ActionTest{
		{
			Name: "Only the content agent can curate",
			Action: &UpdatePerspective{
				Authority:   authority,
				Item:        item,
				Perspective: revision,
			},
			ExpectedErr: storage.ErrUnauthorized,
			State:       mu,
			Timestamp:   now + 25*dayMs,
			Actor:       buyer,
		},
		{
			Name: "Unknown items cannot be curated",
			Action: &UpdatePerspective{
				Authority:   authority,
				Item:        ids.GenerateTestID(),
				Perspective: revision,
			},
			ExpectedErr: ErrOutputCollectibleMissing,
			State:       mu,
			Timestamp:   now + 25*dayMs,
			Actor:       contentAgent,
		},
		{
			Name: "Oversized perspectives are rejected",
			Action: &UpdatePerspective{
				Authority:   authority,
				Item:        item,
				Perspective: make([]byte, storage.MaxPerspectiveSize+1),
			},
			ExpectedErr: ErrOutputPerspectiveTooLarge,
			State:       mu,
			Timestamp:   now + 25*dayMs,
			Actor:       contentAgent,
		},
		{
			Name: "Edits inside the cooldown fail",
			Action: &UpdatePerspective{
				Authority:   authority,
				Item:        item,
				Perspective: revision,
			},
			ExpectedErr: ErrOutputPerspectiveCooldown,
			State:       mu,
			Timestamp:   now + dayMs/24,
			Actor:       contentAgent,
		},
		{
			Name: "The content agent rewrites the perspective",
			Action: &UpdatePerspective{
				Authority:   authority,
				Item:        item,
				Perspective: revision,
			},
			State:     mu,
			Timestamp: now + 25*dayMs/24,
			Actor:     contentAgent,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				owner, stored, lastUpdate, err := storage.GetCollectibleNoController(ctx, m, item)
				require.NoError(err)
				require.Equal(buyer, owner)
				require.True(bytes.Equal(revision, stored))
				require.Equal(now+25*dayMs/24, lastUpdate)
			},
		},
	}

	for _, tt := range curationTests {
		tt.Run(context.Background(), t)
	}
}
