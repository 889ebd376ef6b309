// Copyright (C) 2024, DaiChronicles. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/hypersdk/codec"
	"github.com/ava-labs/hypersdk/state"

	"github.com/DaiChronicles/treasuryvm/storage"
)

// Gated actions carry the active registry address so StateKeys can name the
// record key up front. checkActiveAuthority rejects a stale carry.
func checkActiveAuthority(ctx context.Context, im state.Immutable, authority codec.Address) error {
	active, err := storage.GetActiveAuthorityNoController(ctx, im)
	if err != nil {
		return err
	}
	if active != authority {
		return ErrOutputStaleAuthority
	}
	return nil
}
