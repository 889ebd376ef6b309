// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"encoding/binary"

	"github.com/ava-labs/avalanchego/ids"
	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/ava-labs/hypersdk/chain"
	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/crypto/ed25519"
	"github.com/ava-labs/hypersdk/state"
	"github.com/ava-labs/hypersdk/utils"

	"github.com/DaiChronicles/treasuryvm/consts"
	"github.com/DaiChronicles/treasuryvm/storage"
)

var _ chain.Action = (*PurchaseCollectible)(nil)

// PurchaseCollectible mints a collectible to the buyer against a voucher
// signed off-chain by the content agent's ed25519 key. The item id is the
// hash of the voucher, so a voucher is spendable exactly once. The price
// is split three ways: a burn, a reward-vault share booked as open
// reward, and the treasury remainder.
type PurchaseCollectible struct {
	// Active registry record and treasury vault, required for StateKeys()
	Authority codec.Address `serialize:"true" json:"authority"`
	Treasury  codec.Address `serialize:"true" json:"treasury"`

	Perspective []byte            `serialize:"true" json:"perspective"`
	Price       uint64            `serialize:"true" json:"price"`
	Expiry      int64             `serialize:"true" json:"expiry"`
	Signer      ed25519.PublicKey `serialize:"true" json:"signer"`
	Signature   ed25519.Signature `serialize:"true" json:"signature"`
}

// VoucherMessage is the byte string the content agent signs.
func (p *PurchaseCollectible) VoucherMessage() []byte {
	msg := make([]byte, 0, 16+len(p.Perspective))
	msg = binary.BigEndian.AppendUint64(msg, p.Price)
	msg = binary.BigEndian.AppendUint64(msg, uint64(p.Expiry))
	return append(msg, p.Perspective...)
}

// Item derives the collectible id from the voucher contents.
func (p *PurchaseCollectible) Item() ids.ID {
	return utils.ToID(append(p.VoucherMessage(), p.Signer[:]...))
}

// ComputeUnits implements chain.Action.
func (*PurchaseCollectible) ComputeUnits(chain.Rules) uint64 {
	return PurchaseCollectibleComputeUnits
}

// Execute implements chain.Action.
func (p *PurchaseCollectible) Execute(ctx context.Context, _ chain.Rules, mu state.Mutable, timestamp int64, actor codec.Address, _ ids.ID) ([][]byte, error) {
	if p.Price == 0 {
		return nil, ErrOutputValueZero
	}
	if len(p.Perspective) == 0 || len(p.Perspective) > storage.MaxPerspectiveSize {
		return nil, ErrOutputPerspectiveTooLarge
	}
	if timestamp > p.Expiry {
		return nil, ErrOutputVoucherExpired
	}
	if err := checkActiveAuthority(ctx, mu, p.Authority); err != nil {
		return nil, err
	}
	treasury, err := storage.GetRoleHolderNoController(ctx, mu, storage.RoleTreasury)
	if err != nil {
		return nil, err
	}
	if treasury != p.Treasury {
		return nil, ErrOutputWrongTreasury
	}

	if !ed25519.Verify(p.VoucherMessage(), p.Signer, p.Signature) {
		return nil, ErrOutputInvalidSignature
	}
	contentAgent, err := storage.GetRoleHolderNoController(ctx, mu, storage.RoleContentAgent)
	if err != nil {
		return nil, err
	}
	signerAddress := codec.CreateAddress(consts.ED25519ID, utils.ToID(p.Signer[:]))
	if signerAddress != contentAgent {
		return nil, ErrOutputSignerNotContentAgent
	}

	item := p.Item()
	if _, err := mu.GetValue(ctx, storage.CollectibleKey(item)); err == nil {
		return nil, ErrOutputCollectibleExists
	}

	scaledBurn, err := smath.Mul64(p.Price, storage.PurchaseBurnBP)
	if err != nil {
		return nil, err
	}
	scaledReward, err := smath.Mul64(p.Price, storage.PurchaseRewardBP)
	if err != nil {
		return nil, err
	}
	burnAmount := scaledBurn / storage.BasisPoints
	rewardAmount := scaledReward / storage.BasisPoints
	treasuryAmount := p.Price - burnAmount - rewardAmount

	if err := storage.BurnToken(ctx, mu, storage.CoinAddress, actor, burnAmount); err != nil {
		return nil, err
	}
	if err := storage.TransferToken(ctx, mu, storage.CoinAddress, actor, storage.RewardVaultAddress, rewardAmount); err != nil {
		return nil, err
	}
	openReward, openToClaim, released, err := storage.GetRewardTotalsNoController(ctx, mu)
	if err != nil {
		return nil, err
	}
	newOpenReward, err := smath.Add64(openReward, rewardAmount)
	if err != nil {
		return nil, err
	}
	if err := storage.SetRewardTotals(ctx, mu, newOpenReward, openToClaim, released); err != nil {
		return nil, err
	}
	if err := storage.TransferToken(ctx, mu, storage.CoinAddress, actor, treasury, treasuryAmount); err != nil {
		return nil, err
	}
	if err := storage.SetCollectible(ctx, mu, item, actor, p.Perspective, timestamp); err != nil {
		return nil, err
	}

	return [][]byte{item[:]}, nil
}

// GetTypeID implements chain.Action.
func (*PurchaseCollectible) GetTypeID() uint8 {
	return consts.PurchaseCollectibleID
}

// StateKeys implements chain.Action.
func (p *PurchaseCollectible) StateKeys(actor codec.Address, _ ids.ID) state.Keys {
	return state.Keys{
		string(storage.AuthorityPointerKey()):                                                   state.Read,
		string(storage.AuthorityKey(p.Authority)):                                               state.Read,
		string(storage.CollectibleKey(p.Item())):                                                state.All,
		string(storage.RewardTotalsKey()):                                                       state.All,
		string(storage.TokenInfoKey(storage.CoinAddress)):                                       state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, actor)):                      state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, p.Treasury)):                 state.All,
		string(storage.TokenAccountBalanceKey(storage.CoinAddress, storage.RewardVaultAddress)): state.All,
	}
}

// StateKeysMaxChunks implements chain.Action.
func (*PurchaseCollectible) StateKeysMaxChunks() []uint16 {
	return []uint16{
		storage.AuthorityPointerChunks,
		storage.AuthorityChunks,
		storage.CollectibleChunks,
		storage.RewardTotalsChunks,
		storage.TokenInfoChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
		storage.TokenAccountBalanceChunks,
	}
}

// ValidRange implements chain.Action.
func (*PurchaseCollectible) ValidRange(chain.Rules) (int64, int64) {
	return -1, -1
}
