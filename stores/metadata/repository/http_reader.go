package repository

import (
	"io/ioutil"
	"net/http"
	"time"

	bCtx "github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
	"golang.org/x/xerrors"
)

type httpReaderRepo struct {
	client     http.Client
	ctxTimeout time.Duration
}

func NewHttpReaderRepo(c http.Client, timeout time.Duration) domain.MetadataReaderRepository {
	return &httpReaderRepo{client: c, ctxTimeout: timeout}
}

func (r *httpReaderRepo) Get(c bCtx.Ctx, url string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(c, r.ctxTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		ctx.WithField("url", url).Warn("failed with request")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, xerrors.Errorf("server returned %d", resp.StatusCode)
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	return body, nil
}
