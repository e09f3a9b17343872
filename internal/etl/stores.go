package etl

import (
	"context"
	"strings"
)

// resolveStores collects the distinct non-empty store codes in a row batch,
// looks up the ones already known for the customer in one batched query and
// creates each missing store with its name defaulted to the code. The
// returned map always covers every code seen. Safe to call repeatedly with
// overlapping batches: creation goes through find-or-create, so a (customer,
// code) pair is never created twice.
func resolveStores(ctx context.Context, ds Datastore, customerID uint, rows []Row) (map[string]uint, []string, error) {
	seen := map[string]struct{}{}
	codes := []string{}
	for _, row := range rows {
		code := strings.TrimSpace(row["store"])
		if code == "" {
			continue
		}
		if _, ok := seen[code]; !ok {
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}

	storeMap := make(map[string]uint, len(codes))
	if len(codes) == 0 {
		return storeMap, codes, nil
	}

	existing, err := ds.FindStoresByCodes(ctx, customerID, codes)
	if err != nil {
		return nil, nil, err
	}
	for _, s := range existing {
		storeMap[s.Code] = s.ID
	}

	for _, code := range codes {
		if _, ok := storeMap[code]; ok {
			continue
		}
		store, err := ds.FindOrCreateStore(ctx, customerID, code)
		if err != nil {
			return nil, nil, err
		}
		storeMap[code] = store.ID
	}

	return storeMap, codes, nil
}
