// internal/application/usecase/token_metadata_builder.go
package usecase

import (
	tokendom "tokencreator/internal/domain/token"
)

// buildMetadataDocument maps a normalized request to the off-chain
// Metaplex JSON. Optional fields stay empty and are omitted on upload.
func buildMetadataDocument(req tokendom.Request) tokendom.MetadataDocument {
	return tokendom.MetadataDocument{
		Name:        req.Name,
		Symbol:      req.Symbol,
		Description: req.Description,
		Image:       req.ImageURL,
	}
}
