package vectors

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/hdwallet/libhdwallet/bip32"
	"github.com/kaspanet/hdwallet/libhdwallet/curves"
	"github.com/kaspanet/hdwallet/libhdwallet/hderrors"
)

const fixturePath = "testdata/vectors.csv"

func allCurves(t *testing.T) []curves.Provider {
	providers := make([]curves.Provider, 0, len(curves.Backends()))
	for _, backend := range curves.Backends() {
		provider, err := curves.New(curves.Secp256k1Name, backend)
		if err != nil {
			t.Fatalf("New(%s): %+v", backend, err)
		}
		providers = append(providers, provider)
	}
	return providers
}

func readFixture(t *testing.T) []byte {
	content, err := os.ReadFile(fixturePath)
	if err != nil {
		t.Fatalf("ReadFile: %+v", err)
	}
	return content
}

func readVectors(t *testing.T, content []byte) []*Vector {
	reader := NewReader(bytes.NewReader(content))
	var vectors []*Vector
	for {
		vector, row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				return vectors
			}
			t.Fatalf("Read row %d: %+v", row, err)
		}
		vectors = append(vectors, vector)
	}
}

func TestVerifyFixture(t *testing.T) {
	vectors := readVectors(t, readFixture(t))
	if len(vectors) == 0 {
		t.Fatalf("the fixture has no vectors")
	}

	for _, curve := range allCurves(t) {
		for i, vector := range vectors {
			err := Verify(vector, curve, bip32.BitcoinMainnet)
			if err != nil {
				t.Fatalf("%s row %d: %+v\n%s", curve.Backend(), i+1, err, spew.Sdump(vector))
			}
		}
	}
}

func TestVerifyMismatch(t *testing.T) {
	vectors := readVectors(t, readFixture(t))
	curve := curves.NewBtcec()

	tests := []struct {
		field  string
		mutate func(vector *Vector)
	}{
		{
			field: FieldExtendedPublicKey,
			mutate: func(vector *Vector) {
				vector.ExtendedPublicKey = vectors[1].ExtendedPublicKey
			},
		},
		{
			field: FieldExtendedPrivateKey,
			mutate: func(vector *Vector) {
				vector.ExtendedPrivateKey = vectors[1].ExtendedPrivateKey
			},
		},
		{
			field: FieldSignature,
			mutate: func(vector *Vector) {
				vector.Digest = vectors[1].Digest
			},
		},
	}

	for _, test := range tests {
		vector := *vectors[0]
		test.mutate(&vector)

		err := Verify(&vector, curve, bip32.BitcoinMainnet)
		var mismatchErr *MismatchError
		if !errors.As(err, &mismatchErr) {
			t.Fatalf("%s: expected a MismatchError but got %v", test.field, err)
		}
		if mismatchErr.Field != test.field {
			t.Fatalf("expected a mismatch in %s but got one in %s", test.field, mismatchErr.Field)
		}
		if test.field == FieldExtendedPrivateKey && strings.Contains(err.Error(), "xprv9") {
			t.Fatalf("the mismatch error leaks a private key: %s", err)
		}
	}

	vector := *vectors[0]
	vector.Seed = nil
	err := Verify(&vector, curve, bip32.BitcoinMainnet)
	if !errors.Is(err, hderrors.ErrInvalidSeed) {
		t.Fatalf("expected ErrInvalidSeed but got %v", err)
	}
}

func TestRunnerVerifyAll(t *testing.T) {
	content := readFixture(t)
	expected := len(readVectors(t, content))

	for _, curve := range allCurves(t) {
		for _, workers := range []int{0, 1, 3, 16} {
			runner := NewRunner(curve, bip32.BitcoinMainnet, workers)
			verified, err := runner.VerifyAll(bytes.NewReader(content))
			if err != nil {
				t.Fatalf("%s, %d workers: %+v", curve.Backend(), workers, err)
			}
			if verified != expected {
				t.Fatalf("%s, %d workers: expected %d verified vectors but got %d",
					curve.Backend(), workers, expected, verified)
			}
		}
	}

	verified, err := NewRunner(curves.NewBtcec(), bip32.BitcoinMainnet, 2).VerifyAll(strings.NewReader(""))
	if err != nil {
		t.Fatalf("VerifyAll: %+v", err)
	}
	if verified != 0 {
		t.Fatalf("expected no verified vectors but got %d", verified)
	}
}

func TestRunnerReportsFirstFailingRow(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(string(readFixture(t))), "\n")
	breakRow := func(lines []string, row int) {
		fields := strings.Split(lines[row-1], ",")
		fields[fieldSignature] = "3006020101020101"
		lines[row-1] = strings.Join(fields, ",")
	}

	mismatched := append([]string(nil), lines...)
	breakRow(mismatched, 3)
	breakRow(mismatched, 6)

	for _, workers := range []int{1, 4} {
		runner := NewRunner(curves.NewBtcec(), bip32.BitcoinMainnet, workers)
		_, err := runner.VerifyAll(strings.NewReader(strings.Join(mismatched, "\n")))

		var rowErr *RowError
		if !errors.As(err, &rowErr) {
			t.Fatalf("expected a RowError but got %v", err)
		}
		if rowErr.Row != 3 {
			t.Fatalf("%d workers: expected row 3 to fail first but got row %d", workers, rowErr.Row)
		}
		var mismatchErr *MismatchError
		if !errors.As(err, &mismatchErr) || mismatchErr.Field != FieldSignature {
			t.Fatalf("expected a signature mismatch but got %v", err)
		}
	}

	malformed := append([]string(nil), lines...)
	malformed[1] = "zz" + malformed[1]
	runner := NewRunner(curves.NewBtcec(), bip32.BitcoinMainnet, 2)
	_, err := runner.VerifyAll(strings.NewReader(strings.Join(malformed, "\n")))
	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("expected a RowError but got %v", err)
	}
	if rowErr.Row != 2 {
		t.Fatalf("expected row 2 to fail but got row %d", rowErr.Row)
	}
}

func TestGenerate(t *testing.T) {
	random := rand.New(rand.NewSource(0))
	curve := curves.NewBtcec()

	var buffer bytes.Buffer
	writer := NewWriter(&buffer)
	var generated []*Vector
	for i := 0; i < 20; i++ {
		vector, err := Generate(random, curve, bip32.BitcoinMainnet)
		if err != nil {
			t.Fatalf("Generate: %+v", err)
		}

		if len(vector.Seed) < bip32.MinSeedBytes || len(vector.Seed) > bip32.MaxSeedBytes {
			t.Fatalf("unexpected seed length %d", len(vector.Seed))
		}
		if len(vector.Path) < 1 || len(vector.Path) > 1+maxExtraPathSteps {
			t.Fatalf("unexpected path %s", vector.Path)
		}
		if vector.Path[0] != (bip32.PathStep{Index: 0, Hardened: true}) {
			t.Fatalf("path %s doesn't start with m/0'", vector.Path)
		}
		for _, step := range vector.Path {
			if step.Index > maxGeneratedIndex {
				t.Fatalf("path %s has an index above %d", vector.Path, maxGeneratedIndex)
			}
		}
		if len(vector.Digest) != curves.DigestSize {
			t.Fatalf("unexpected digest length %d", len(vector.Digest))
		}

		for _, verifyingCurve := range allCurves(t) {
			err = Verify(vector, verifyingCurve, bip32.BitcoinMainnet)
			if err != nil {
				t.Fatalf("%s: generated vector doesn't verify: %+v", verifyingCurve.Backend(), err)
			}
		}

		err = writer.Write(vector)
		if err != nil {
			t.Fatalf("Write: %+v", err)
		}
		generated = append(generated, vector)
	}
	err := writer.Flush()
	if err != nil {
		t.Fatalf("Flush: %+v", err)
	}

	read := readVectors(t, buffer.Bytes())
	if !reflect.DeepEqual(read, generated) {
		t.Fatalf("vectors changed when written and read back")
	}

	_, err = Generate(bytes.NewReader([]byte{1, 2, 3}), curve, bip32.BitcoinMainnet)
	if err == nil {
		t.Fatalf("Generate: expected an error for exhausted randomness")
	}
}

func TestParseRecordErrors(t *testing.T) {
	valid := []string{"000102030405060708090a0b0c0d0e0f", "m/0'", "xpub", "xprv", "00", "3006020101020101"}

	tests := []struct {
		name   string
		field  int
		value  string
		isPath bool
	}{
		{name: "seed", field: fieldSeed, value: "0g"},
		{name: "path", field: fieldPath, value: "0'/1", isPath: true},
		{name: "digest", field: fieldDigest, value: "abc"},
		{name: "signature", field: fieldSignature, value: "xyz"},
	}

	for _, test := range tests {
		record := append([]string(nil), valid...)
		record[test.field] = test.value
		_, err := ParseRecord(record)
		if err == nil {
			t.Fatalf("%s: expected an error", test.name)
		}
		if test.isPath && !errors.Is(err, hderrors.ErrMalformedInput) {
			t.Fatalf("%s: expected ErrMalformedInput but got %v", test.name, err)
		}
	}

	_, err := ParseRecord(valid[:5])
	if err == nil {
		t.Fatalf("expected an error for a short record")
	}

	vector, err := ParseRecord(valid)
	if err != nil {
		t.Fatalf("ParseRecord: %+v", err)
	}
	if !reflect.DeepEqual(vector.Record(), valid) {
		t.Fatalf("Record: expected %v but got %v", valid, vector.Record())
	}
}
