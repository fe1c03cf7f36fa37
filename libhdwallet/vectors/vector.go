// Package vectors reads, writes, verifies and generates HD wallet test
// vectors: a seed, a derivation path, the extended keys expected at that
// path and the signature expected for a digest.
package vectors

import (
	"encoding/csv"
	"encoding/hex"
	"io"

	"github.com/kaspanet/hdwallet/libhdwallet/bip32"
	"github.com/pkg/errors"
)

const (
	fieldSeed = iota
	fieldPath
	fieldExtendedPublicKey
	fieldExtendedPrivateKey
	fieldDigest
	fieldSignature
	fieldCount
)

// Vector is one test vector.
type Vector struct {
	Seed               []byte
	Path               bip32.Path
	ExtendedPublicKey  string
	ExtendedPrivateKey string
	Digest             []byte
	Signature          []byte
}

// ParseRecord parses the six CSV fields of a vector: seed, path, xpub,
// xprv, digest and DER signature, with binary fields in hex.
func ParseRecord(record []string) (*Vector, error) {
	if len(record) != fieldCount {
		return nil, errors.Errorf("expected %d fields but got %d", fieldCount, len(record))
	}

	seed, err := hex.DecodeString(record[fieldSeed])
	if err != nil {
		return nil, errors.Wrap(err, "malformed seed")
	}
	path, err := bip32.ParsePath(record[fieldPath])
	if err != nil {
		return nil, err
	}
	digest, err := hex.DecodeString(record[fieldDigest])
	if err != nil {
		return nil, errors.Wrap(err, "malformed digest")
	}
	signature, err := hex.DecodeString(record[fieldSignature])
	if err != nil {
		return nil, errors.Wrap(err, "malformed signature")
	}

	return &Vector{
		Seed:               seed,
		Path:               path,
		ExtendedPublicKey:  record[fieldExtendedPublicKey],
		ExtendedPrivateKey: record[fieldExtendedPrivateKey],
		Digest:             digest,
		Signature:          signature,
	}, nil
}

// Record returns the CSV fields of the vector.
func (v *Vector) Record() []string {
	record := make([]string, fieldCount)
	record[fieldSeed] = hex.EncodeToString(v.Seed)
	record[fieldPath] = v.Path.String()
	record[fieldExtendedPublicKey] = v.ExtendedPublicKey
	record[fieldExtendedPrivateKey] = v.ExtendedPrivateKey
	record[fieldDigest] = hex.EncodeToString(v.Digest)
	record[fieldSignature] = hex.EncodeToString(v.Signature)
	return record
}

// Reader reads vectors from a headerless CSV stream.
type Reader struct {
	csvReader *csv.Reader
	row       int
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = fieldCount
	csvReader.TrimLeadingSpace = true
	csvReader.ReuseRecord = true
	return &Reader{csvReader: csvReader}
}

// Read returns the next vector and its 1-based row number. It returns
// io.EOF when the stream is exhausted.
func (r *Reader) Read() (vector *Vector, row int, err error) {
	record, err := r.csvReader.Read()
	if err == io.EOF {
		return nil, 0, io.EOF
	}
	r.row++
	if err != nil {
		return nil, r.row, err
	}

	vector, err = ParseRecord(record)
	if err != nil {
		return nil, r.row, err
	}
	return vector, r.row, nil
}

// Writer writes vectors as headerless CSV.
type Writer struct {
	csvWriter *csv.Writer
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csvWriter: csv.NewWriter(w)}
}

// Write writes one vector. Call Flush to make sure it reached the
// underlying writer.
func (w *Writer) Write(vector *Vector) error {
	return w.csvWriter.Write(vector.Record())
}

// Flush writes any buffered vectors to the underlying writer.
func (w *Writer) Flush() error {
	w.csvWriter.Flush()
	return w.csvWriter.Error()
}
