package repository

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	bCtx "github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/env"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
	"golang.org/x/xerrors"
)

// DefaultIpfsGateway is used when no gateway is configured.
const DefaultIpfsGateway = "https://ipfs.io"

// FallbackIpfsGateway is tried when the configured gateway fails.
const FallbackIpfsGateway = "https://cloudflare-ipfs.com"

type ipfsGatewayReaderRepo struct {
	client     http.Client
	gateways   []string
	ctxTimeout time.Duration
}

// NewIpfsGatewayReaderRepo reads content-addressed documents through HTTP
// gateways, primary first then fallback. The IPFS_GATEWAY env var overrides
// the configured gateway.
func NewIpfsGatewayReaderRepo(c http.Client, gateway string, timeout time.Duration) domain.MetadataReaderRepository {
	if override := env.IpfsGateway(); override != "" {
		gateway = override
	}
	if gateway == "" {
		gateway = DefaultIpfsGateway
	}
	gateways := []string{gateway}
	if gateway != FallbackIpfsGateway {
		gateways = append(gateways, FallbackIpfsGateway)
	}
	return &ipfsGatewayReaderRepo{client: c, gateways: gateways, ctxTimeout: timeout}
}

func (r *ipfsGatewayReaderRepo) Get(c bCtx.Ctx, cid string) ([]byte, error) {
	var lastErr error
	for _, gateway := range r.gateways {
		body, err := r.getFrom(c, gateway, cid)
		if err == nil {
			return body, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (r *ipfsGatewayReaderRepo) getFrom(c bCtx.Ctx, gateway, cid string) ([]byte, error) {
	url := fmt.Sprintf("%s/ipfs/%s", gateway, cid)
	ctx, cancel := bCtx.WithTimeout(c, r.ctxTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"cid": cid,
			"url": url,
		}).Warn("gateway request failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"cid":        cid,
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, xerrors.Errorf("gateway returned %d", resp.StatusCode)
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"cid": cid,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	return body, nil
}
