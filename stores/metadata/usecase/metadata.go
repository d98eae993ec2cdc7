package usecase

import (
	"encoding/json"
	"net/url"
	"strings"

	"golang.org/x/xerrors"

	bCtx "github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
)

type MetadataUseCaseCfg struct {
	HttpReader domain.MetadataReaderRepository
	IpfsReader domain.MetadataReaderRepository
}

type metadataUseCase struct {
	httpReader domain.MetadataReaderRepository
	ipfsReader domain.MetadataReaderRepository
}

func NewMetadataUseCase(cfg *MetadataUseCaseCfg) domain.MetadataUseCase {
	return &metadataUseCase{
		httpReader: cfg.HttpReader,
		ipfsReader: cfg.IpfsReader,
	}
}

// GetFromUri resolves a metadata uri into a parsed document. Both
// `ipfs://<hash>` and a bare `<hash>` resolve through the ipfs reader.
// Any failure maps to domain.ErrMetadataUnavailable; the caller treats it
// as non-fatal.
func (u *metadataUseCase) GetFromUri(c bCtx.Ctx, rawUri string) (*domain.AuctionMetadata, error) {
	var (
		data []byte
		err  error
	)

	pUrl, err := url.Parse(rawUri)
	if err != nil {
		c.WithFields(log.Fields{
			"uri": rawUri,
			"err": err,
		}).Error("failed to parse uri")
		return nil, xerrors.Errorf("%w: %v", domain.ErrMetadataUnavailable, err)
	}

	if pUrl.Scheme == "https" || pUrl.Scheme == "http" {
		data, err = u.httpReader.Get(c, rawUri)
	} else if pUrl.Scheme == "ipfs" {
		cid := strings.TrimPrefix(rawUri, "ipfs://")
		cid = strings.TrimPrefix(cid, "ipfs/")
		data, err = u.ipfsReader.Get(c, cid)
	} else if pUrl.Scheme == "" {
		// scheme-less uris are bare content hashes
		data, err = u.ipfsReader.Get(c, rawUri)
	} else {
		return nil, domain.ErrUnsupportedSchema
	}

	if err != nil {
		c.WithFields(log.Fields{
			"schema": pUrl.Scheme,
			"uri":    rawUri,
			"err":    err,
		}).Error("failed to fetch")
		return nil, xerrors.Errorf("%w: %v", domain.ErrMetadataUnavailable, err)
	}
	if !json.Valid(data) {
		c.WithField("uri", rawUri).Error("invalid json")
		return nil, xerrors.Errorf("%w: %v", domain.ErrMetadataUnavailable, domain.ErrInvalidJsonFormat)
	}

	metadata, err := domain.ParseAuctionMetadata(json.RawMessage(data))
	if err != nil {
		return nil, xerrors.Errorf("%w: %v", domain.ErrMetadataUnavailable, err)
	}
	return metadata, nil
}
