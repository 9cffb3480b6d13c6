// auth/verifier.go

package auth

import "golang.org/x/crypto/ssh"

// SignatureMaterial is the signed content of an authentication request.
type SignatureMaterial struct {
	KeyID     string
	Algorithm string
	Data      []byte
	Signature []byte
}

// Verifier checks signature material against a registered public key.
type Verifier interface {
	Verify(material SignatureMaterial, key string) bool
}

// SSHVerifier verifies signatures against public keys stored in
// authorized-keys format.
type SSHVerifier struct{}

var _ Verifier = SSHVerifier{}

func (SSHVerifier) Verify(material SignatureMaterial, key string) bool {
	pub, _, _, _, err := ssh.ParseAuthorizedKey([]byte(key))
	if err != nil {
		return false
	}
	sig := &ssh.Signature{
		Format: material.Algorithm,
		Blob:   material.Signature,
	}
	return pub.Verify(material.Data, sig) == nil
}
