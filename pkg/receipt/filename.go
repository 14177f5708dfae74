package receipt

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveFilename returns a stored filename that does not yet exist in
// the owner's namespace: the original name when free, otherwise
// base(1).ext, base(2).ext and so on.
//
// The existence probe and the eventual insert are separate operations,
// so two concurrent uploads of the same name can both be handed the
// same slot. Record identity is the generated receipt id, not the
// filename, so the race can at worst produce a duplicate display name
// and a shared object key.
func ResolveFilename(ctx context.Context, repo ReceiptRepository, ownerID, originalFilename string) (string, error) {
	extension := filepath.Ext(originalFilename)
	baseName := strings.TrimSuffix(originalFilename, extension)

	exists, err := repo.FilenameExists(ctx, ownerID, originalFilename)
	if err != nil {
		return "", err
	}
	if !exists {
		return originalFilename, nil
	}

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s(%d)%s", baseName, counter, extension)
		exists, err := repo.FilenameExists(ctx, ownerID, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}
