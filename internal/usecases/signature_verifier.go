package usecases

import (
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"kyc-platform.backend/pkg/crypto"
)

const (
	createKycTag     = "createKYCMember"
	createProjectTag = "createProject"
)

// SignatureVerifier derives the hashes the authority signs and checks signatures over them
type SignatureVerifier struct{}

// NewSignatureVerifier creates a new signature verifier
func NewSignatureVerifier() *SignatureVerifier {
	return &SignatureVerifier{}
}

// HashCreateKyc is keccak256(abi.encodePacked("createKYCMember", uid, account))
func (v *SignatureVerifier) HashCreateKyc(uid string, account common.Address) common.Hash {
	return ethcrypto.Keccak256Hash([]byte(createKycTag), []byte(uid), account.Bytes())
}

// HashCreateProject is keccak256(abi.encodePacked("createProject", projectId, account))
func (v *SignatureVerifier) HashCreateProject(projectID string, account common.Address) common.Hash {
	return ethcrypto.Keccak256Hash([]byte(createProjectTag), []byte(projectID), account.Bytes())
}

// Verify reports whether signature is expectedSigner's personal-sign signature over hash.
// Malformed signatures verify as false.
func (v *SignatureVerifier) Verify(hash common.Hash, signature string, expectedSigner common.Address) bool {
	sig, err := crypto.DecodeSignature(signature)
	if err != nil {
		return false
	}
	signer, err := crypto.RecoverPersonalSigner(hash.Bytes(), sig)
	if err != nil {
		return false
	}
	return signer == expectedSigner
}
