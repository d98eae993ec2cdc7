package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bCtx "github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/mocks"
)

func Test_metadataUseCase_GetFromUri(t *testing.T) {
	doc := []byte(`{"name":"Vintage Lamp","description":"brass, 1950s","category":"Furniture","images":["ipfs://img1","ipfs://img2"]}`)

	tests := []struct {
		name         string
		calledReader string
		uri          string
		calledUri    string
		body         []byte
		readerErr    error
		wantName     string
		wantCategory string
		wantImages   int
		wantErr      error
	}{
		{
			name:         "ipfs scheme is stripped before gateway lookup",
			calledReader: "ipfs",
			uri:          "ipfs://abc123",
			calledUri:    "abc123",
			body:         doc,
			wantName:     "Vintage Lamp",
			wantCategory: "Furniture",
			wantImages:   2,
		},
		{
			name:         "bare hash goes through the ipfs reader unchanged",
			calledReader: "ipfs",
			uri:          "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
			calledUri:    "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
			body:         doc,
			wantName:     "Vintage Lamp",
			wantCategory: "Furniture",
			wantImages:   2,
		},
		{
			name:         "https goes through the http reader",
			calledReader: "http",
			uri:          "https://example.com/meta.json",
			calledUri:    "https://example.com/meta.json",
			body:         doc,
			wantName:     "Vintage Lamp",
			wantCategory: "Furniture",
			wantImages:   2,
		},
		{
			name:         "missing fields degrade to defaults",
			calledReader: "ipfs",
			uri:          "ipfs://abc123",
			calledUri:    "abc123",
			body:         []byte(`{}`),
			wantName:     domain.DefaultMetadataName,
			wantCategory: domain.DefaultMetadataCategory,
			wantImages:   0,
		},
		{
			name:         "network failure maps to ErrMetadataUnavailable",
			calledReader: "ipfs",
			uri:          "ipfs://abc123",
			calledUri:    "abc123",
			readerErr:    errors.New("gateway down"),
			wantErr:      domain.ErrMetadataUnavailable,
		},
		{
			name:         "non json body maps to ErrMetadataUnavailable",
			calledReader: "ipfs",
			uri:          "ipfs://abc123",
			calledUri:    "abc123",
			body:         []byte("<html>not json</html>"),
			wantErr:      domain.ErrMetadataUnavailable,
		},
		{
			name:    "unsupported schema",
			uri:     "ftp://example.com/meta.json",
			wantErr: domain.ErrUnsupportedSchema,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			readers := map[string]*mocks.MetadataReaderRepository{
				"http": {},
				"ipfs": {},
			}
			if len(tt.calledReader) > 0 {
				readers[tt.calledReader].
					On("Get", mock.Anything, tt.calledUri).
					Return(tt.body, tt.readerErr)
			}
			u := NewMetadataUseCase(&MetadataUseCaseCfg{
				HttpReader: readers["http"],
				IpfsReader: readers["ipfs"],
			})

			got, err := u.GetFromUri(bCtx.Background(), tt.uri)
			if tt.wantErr != nil {
				req.Error(err)
				req.ErrorIs(err, tt.wantErr)
				return
			}
			req.NoError(err)
			req.Equal(tt.wantName, got.Name)
			req.Equal(tt.wantCategory, got.Category)
			req.Len(got.ImageUris, tt.wantImages)
			if len(tt.calledReader) > 0 {
				readers[tt.calledReader].AssertExpectations(t)
			}
		})
	}
}
