package infra

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/cloudfront/sign"
	"github.com/google/uuid"

	"github.com/tnqbao/gau-media-service/config"
)

// CDNClient derives delivery URLs on the CDN distribution in front of the
// destination bucket and, when the deployment enables it, signs them with the
// distribution's RSA key pair. Signatures are verified at the CDN edge; no
// call back to this service is involved.
type CDNClient struct {
	Scheme      string
	Domain      string
	Resolutions []int
	SignActive  bool
	Validity    time.Duration

	signer *sign.URLSigner
}

func InitCDNClient(cfg *config.EnvConfig) *CDNClient {
	if cfg.CDN.Domain == "" {
		panic("CDN domain is not configured")
	}

	client := &CDNClient{
		Scheme:      cfg.CDN.Scheme,
		Domain:      cfg.CDN.Domain,
		Resolutions: cfg.CDN.Resolutions,
		SignActive:  cfg.CDN.SignedURLActive,
		Validity:    time.Duration(cfg.CDN.SignedURLExpire) * time.Second,
	}

	if client.SignActive {
		if cfg.CDN.KeyPairID == "" {
			panic("CDN signed URLs are active but no key pair id is configured")
		}
		privateKey, err := parseRSAPrivateKey(cfg.CDN.PrivateKeyPEM)
		if err != nil {
			panic(fmt.Sprintf("Failed to load CDN signing key: %v", err))
		}
		client.signer = sign.NewURLSigner(cfg.CDN.KeyPairID, privateKey)
	}

	return client
}

func parseRSAPrivateKey(pemData string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in signing key")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("signing key is not an RSA key")
	}
	return key, nil
}

// BaseURL is the delivery prefix of one resource family:
// <scheme>://<domain>/<owner>. Owner is the parent video for thumbnails and
// timed text tracks.
func (c *CDNClient) BaseURL(ownerID uuid.UUID) string {
	return fmt.Sprintf("%s://%s/%s", c.Scheme, c.Domain, ownerID)
}

// SignURL returns a time-bounded signed variant of the URL, valid for the
// configured validity window starting now. When signing is disabled the URL
// passes through untouched.
func (c *CDNClient) SignURL(rawURL string) (string, error) {
	if !c.SignActive {
		return rawURL, nil
	}
	return c.SignURLUntil(rawURL, time.Now().Add(c.Validity))
}

// SignURLUntil signs with an explicit expiry. The expiry is part of the
// signed payload, so re-signing the same URL later yields a new signature.
func (c *CDNClient) SignURLUntil(rawURL string, expiresAt time.Time) (string, error) {
	if !c.SignActive {
		return rawURL, nil
	}
	signedURL, err := c.signer.Sign(rawURL, expiresAt)
	if err != nil {
		return "", fmt.Errorf("failed to sign URL: %w", err)
	}
	return signedURL, nil
}
