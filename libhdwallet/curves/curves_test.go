package curves

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/kaspanet/hdwallet/libhdwallet/hderrors"
)

func allProviders(t *testing.T) []Provider {
	providers := make([]Provider, 0, len(Backends()))
	for _, backend := range Backends() {
		provider, err := New(Secp256k1Name, backend)
		if err != nil {
			t.Fatalf("New(%s): %+v", backend, err)
		}
		providers = append(providers, provider)
	}
	return providers
}

func mustPrivateKey(t *testing.T, hexString string) *PrivateKey {
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		t.Fatalf("DecodeString: %+v", err)
	}
	var key PrivateKey
	copy(key[len(key)-len(decoded):], decoded)
	return &key
}

func TestNew(t *testing.T) {
	provider, err := New(Secp256k1Name, "")
	if err != nil {
		t.Fatalf("New: %+v", err)
	}
	if provider.Backend() != BackendBtcec {
		t.Fatalf("expected the default backend to be %s but got %s", BackendBtcec, provider.Backend())
	}

	_, err = New("nist256p1", BackendBtcec)
	if !errors.Is(err, hderrors.ErrUnsupportedOperation) {
		t.Fatalf("expected ErrUnsupportedOperation for an unknown curve but got %v", err)
	}

	_, err = New(Secp256k1Name, "openssl")
	if !errors.Is(err, hderrors.ErrUnsupportedOperation) {
		t.Fatalf("expected ErrUnsupportedOperation for an unknown backend but got %v", err)
	}
}

func TestPublicKey(t *testing.T) {
	tests := []struct {
		privateKey string
		publicKey  string
	}{
		{
			privateKey: "01",
			publicKey:  "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		},
		{
			// master key of BIP32 test vector 1
			privateKey: "e8f32e723decf4051aefac8e2c93c9c5b214313817cdb01a1494b917c8436b35",
			publicKey:  "0339a36013301597daef41fbe593a02cc513d0b55527ec2df1050e2e8ff49c85c2",
		},
	}

	for _, provider := range allProviders(t) {
		for i, test := range tests {
			publicKey, err := provider.PublicKey(mustPrivateKey(t, test.privateKey))
			if err != nil {
				t.Fatalf("%s test #%d: PublicKey: %+v", provider.Backend(), i, err)
			}
			if hex.EncodeToString(publicKey[:]) != test.publicKey {
				t.Fatalf("%s test #%d: expected %s but got %x", provider.Backend(), i, test.publicKey, publicKey[:])
			}

			parsed, err := provider.ParsePublicKey(publicKey[:])
			if err != nil {
				t.Fatalf("%s test #%d: ParsePublicKey: %+v", provider.Backend(), i, err)
			}
			if *parsed != *publicKey {
				t.Fatalf("%s test #%d: ParsePublicKey changed the key", provider.Backend(), i)
			}
		}
	}
}

func TestValidatePrivateKey(t *testing.T) {
	order := secp256k1Order
	orderMinusOne := secp256k1Order
	orderMinusOne[31]--

	tests := []struct {
		name        string
		key         PrivateKey
		expectedErr error
	}{
		{name: "zero", key: PrivateKey{}, expectedErr: ErrScalarZero},
		{name: "order", key: PrivateKey(order), expectedErr: ErrScalarOutOfRange},
		{name: "all ones", key: PrivateKey(bytes.Repeat([]byte{0xff}, 32)), expectedErr: ErrScalarOutOfRange},
		{name: "order minus one", key: PrivateKey(orderMinusOne), expectedErr: nil},
	}

	for _, provider := range allProviders(t) {
		for _, test := range tests {
			err := provider.ValidatePrivateKey(&test.key)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("%s %s: expected %v but got %v", provider.Backend(), test.name, test.expectedErr, err)
			}
		}
	}
}

func TestTweakAdd(t *testing.T) {
	one := mustPrivateKey(t, "01")
	var tweakTwo [32]byte
	tweakTwo[31] = 2
	three := mustPrivateKey(t, "03")

	orderMinusOne := secp256k1Order
	orderMinusOne[31]--
	var tweakOne [32]byte
	tweakOne[31] = 1

	for _, provider := range allProviders(t) {
		sum, err := provider.TweakAddPrivateKey(one, &tweakTwo)
		if err != nil {
			t.Fatalf("%s: TweakAddPrivateKey: %+v", provider.Backend(), err)
		}
		if *sum != *three {
			t.Fatalf("%s: expected 1+2 = 3 but got %x", provider.Backend(), sum[:])
		}

		// (n-1) + 1 = 0 mod n
		_, err = provider.TweakAddPrivateKey((*PrivateKey)(&orderMinusOne), &tweakOne)
		if !errors.Is(err, ErrScalarZero) {
			t.Fatalf("%s: expected ErrScalarZero but got %v", provider.Backend(), err)
		}

		order := secp256k1Order
		_, err = provider.TweakAddPrivateKey(one, &order)
		if !errors.Is(err, ErrScalarOutOfRange) {
			t.Fatalf("%s: expected ErrScalarOutOfRange but got %v", provider.Backend(), err)
		}

		// 1·G + 2·G must equal 3·G
		onePoint, err := provider.PublicKey(one)
		if err != nil {
			t.Fatalf("%s: PublicKey: %+v", provider.Backend(), err)
		}
		threePoint, err := provider.PublicKey(three)
		if err != nil {
			t.Fatalf("%s: PublicKey: %+v", provider.Backend(), err)
		}
		tweakedPoint, err := provider.TweakAddPublicKey(onePoint, &tweakTwo)
		if err != nil {
			t.Fatalf("%s: TweakAddPublicKey: %+v", provider.Backend(), err)
		}
		if *tweakedPoint != *threePoint {
			t.Fatalf("%s: expected G+2G = 3G but got %x", provider.Backend(), tweakedPoint[:])
		}

		// -G + G is the point at infinity
		minusOnePoint, err := provider.PublicKey((*PrivateKey)(&orderMinusOne))
		if err != nil {
			t.Fatalf("%s: PublicKey: %+v", provider.Backend(), err)
		}
		_, err = provider.TweakAddPublicKey(minusOnePoint, &tweakOne)
		if !errors.Is(err, ErrPointAtInfinity) {
			t.Fatalf("%s: expected ErrPointAtInfinity but got %v", provider.Backend(), err)
		}
	}
}

// TestSignDigest checks the RFC6979 fixture for private key 1 and
// sha256("Satoshi Nakamoto").
func TestSignDigest(t *testing.T) {
	const expectedR = "934b1ea10a4b3c1757e2b0c017d0b6143ce3c9a7e6a4a49860d7a6ab210ee3d8"
	const expectedS = "2442ce9d2b916064108014783e923ec36b49743e2ffa1c4496f01a512aafd9e5"

	key := mustPrivateKey(t, "01")
	digest := Digest(sha256.Sum256([]byte("Satoshi Nakamoto")))

	for _, provider := range allProviders(t) {
		signature, err := provider.SignDigest(key, &digest)
		if err != nil {
			t.Fatalf("%s: SignDigest: %+v", provider.Backend(), err)
		}
		if hex.EncodeToString(signature[:32]) != expectedR {
			t.Fatalf("%s: expected r %s but got %x", provider.Backend(), expectedR, signature[:32])
		}
		if hex.EncodeToString(signature[32:]) != expectedS {
			t.Fatalf("%s: expected s %s but got %x", provider.Backend(), expectedS, signature[32:])
		}

		publicKey, err := provider.PublicKey(key)
		if err != nil {
			t.Fatalf("%s: PublicKey: %+v", provider.Backend(), err)
		}
		if !provider.VerifyDigest(publicKey, &digest, signature) {
			t.Fatalf("%s: VerifyDigest rejected a valid signature", provider.Backend())
		}

		otherDigest := digest
		otherDigest[0] ^= 0x01
		if provider.VerifyDigest(publicKey, &otherDigest, signature) {
			t.Fatalf("%s: VerifyDigest accepted a signature over a different digest", provider.Backend())
		}
	}
}

func TestSignDigestIsDeterministic(t *testing.T) {
	key := mustPrivateKey(t, "edb2e14f9ee77d26dd93b4ecede8d16ed408ce149b6cd80b0715a2d911a0afea")
	var digest Digest
	digest[31] = 1

	for _, provider := range allProviders(t) {
		first, err := provider.SignDigest(key, &digest)
		if err != nil {
			t.Fatalf("%s: SignDigest: %+v", provider.Backend(), err)
		}
		for i := 0; i < 4; i++ {
			again, err := provider.SignDigest(key, &digest)
			if err != nil {
				t.Fatalf("%s: SignDigest: %+v", provider.Backend(), err)
			}
			if *again != *first {
				t.Fatalf("%s: signature #%d differs: %x != %x", provider.Backend(), i, again[:], first[:])
			}
		}
	}
}

func TestBackendsAgree(t *testing.T) {
	btcecProvider := NewBtcec()
	libsecpProvider := NewLibsecp256k1()

	key := mustPrivateKey(t, "edb2e14f9ee77d26dd93b4ecede8d16ed408ce149b6cd80b0715a2d911a0afea")
	for i := 0; i < 16; i++ {
		digest := Digest(sha256.Sum256([]byte{byte(i)}))

		btcecSignature, err := btcecProvider.SignDigest(key, &digest)
		if err != nil {
			t.Fatalf("btcec SignDigest: %+v", err)
		}
		libsecpSignature, err := libsecpProvider.SignDigest(key, &digest)
		if err != nil {
			t.Fatalf("libsecp256k1 SignDigest: %+v", err)
		}
		if *btcecSignature != *libsecpSignature {
			t.Fatalf("digest #%d: backends disagree: %x != %x", i, btcecSignature[:], libsecpSignature[:])
		}

		var tweak [32]byte
		copy(tweak[:], digest[:])
		btcecTweaked, err := btcecProvider.TweakAddPrivateKey(key, &tweak)
		if err != nil {
			t.Fatalf("btcec TweakAddPrivateKey: %+v", err)
		}
		libsecpTweaked, err := libsecpProvider.TweakAddPrivateKey(key, &tweak)
		if err != nil {
			t.Fatalf("libsecp256k1 TweakAddPrivateKey: %+v", err)
		}
		if *btcecTweaked != *libsecpTweaked {
			t.Fatalf("digest #%d: backends disagree on tweak: %x != %x", i, btcecTweaked[:], libsecpTweaked[:])
		}
	}
}
