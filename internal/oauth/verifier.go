package oauth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the claimed Google profile carried as a provisional user
// until checkUser materializes it against the users collection.
type Identity struct {
	Name    string
	Email   string
	Picture string
}

const googleCertsURL = "https://www.googleapis.com/oauth2/v3/certs"

var (
	ErrInvalidToken = errors.New("invalid google token")

	googleIssuers = []string{"https://accounts.google.com", "accounts.google.com"}
)

// Verifier validates a Google ID token end to end: RS256 signature
// against Google's published JWKS, then iss and aud. The key set is
// cached and refreshed on expiry or unknown kid.
type Verifier struct {
	ClientID string
	CertsURL string
	TTL      time.Duration

	mu    sync.RWMutex
	keys  map[string]*rsa.PublicKey
	expAt time.Time

	http *http.Client
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{
		ClientID: clientID,
		CertsURL: googleCertsURL,
		TTL:      time.Hour,
		keys:     make(map[string]*rsa.PublicKey),
		http:     &http.Client{Timeout: 5 * time.Second},
	}
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwksDoc struct {
	Keys []jwk `json:"keys"`
}

func (v *Verifier) refresh(ctx context.Context) error {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, v.CertsURL, nil)
	resp, err := v.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var doc jwksDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return err
	}
	tmp := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		nb, err := base64.RawURLEncoding.DecodeString(k.N)
		if err != nil {
			continue
		}
		eb, err := base64.RawURLEncoding.DecodeString(k.E)
		if err != nil || len(eb) == 0 {
			continue
		}
		e := 0
		for _, b := range eb {
			e = e<<8 + int(b)
		}
		tmp[k.Kid] = &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}
	}
	v.mu.Lock()
	v.keys = tmp
	v.expAt = time.Now().Add(v.TTL)
	v.mu.Unlock()
	return nil
}

func (v *Verifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	if pk, ok := v.keys[kid]; ok && time.Now().Before(v.expAt) {
		v.mu.RUnlock()
		return pk, nil
	}
	v.mu.RUnlock()

	if err := v.refresh(ctx); err != nil {
		return nil, err
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	if pk, ok := v.keys[kid]; ok {
		return pk, nil
	}
	return nil, errors.New("kid not found in JWKS")
}

type idTokenClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	jwt.RegisteredClaims
}

// Verify checks the raw ID token and returns the claimed identity.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))
	tok, parts, err := parser.ParseUnverified(rawToken, jwt.MapClaims{})
	if err != nil || len(parts) != 3 {
		return nil, ErrInvalidToken
	}
	kid, _ := tok.Header["kid"].(string)
	if kid == "" {
		return nil, ErrInvalidToken
	}
	pub, err := v.key(ctx, kid)
	if err != nil {
		return nil, err
	}

	claims := &idTokenClaims{}
	_, err = jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("bad method")
		}
		return pub, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	if !issuedByGoogle(claims.Issuer) {
		return nil, ErrInvalidToken
	}
	if v.ClientID != "" && !audienceMatches(claims.Audience, v.ClientID) {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{Name: claims.Name, Email: claims.Email, Picture: claims.Picture}, nil
}

func issuedByGoogle(iss string) bool {
	for _, want := range googleIssuers {
		if iss == want {
			return true
		}
	}
	return false
}

func audienceMatches(aud jwt.ClaimStrings, clientID string) bool {
	for _, a := range aud {
		if a == clientID {
			return true
		}
	}
	return false
}
