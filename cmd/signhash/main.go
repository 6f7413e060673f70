package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"kyc-platform.backend/internal/usecases"
	"kyc-platform.backend/pkg/crypto"
)

type approval struct {
	Hash      common.Hash
	Signature string
}

// signApproval produces the authority signature a user submits with createKYCMember or createProject
func signApproval(kind, id, account, keyHex string) (*approval, error) {
	addr, err := usecases.ParseAddress(account)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}

	verifier := usecases.NewSignatureVerifier()
	var hash common.Hash
	switch kind {
	case "kyc":
		hash = verifier.HashCreateKyc(id, addr)
	case "project":
		hash = verifier.HashCreateProject(id, addr)
	default:
		return nil, fmt.Errorf("unknown kind %q, want kyc or project", kind)
	}

	return signHash(hash, keyHex)
}

// signHash personal-signs a 32-byte hash the way web3.eth.sign does
func signHash(hash common.Hash, keyHex string) (*approval, error) {
	key, err := crypto.ParsePrivateKey(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	sig, err := crypto.SignPersonal(hash.Bytes(), key)
	if err != nil {
		return nil, err
	}
	return &approval{Hash: hash, Signature: hexutil.Encode(sig)}, nil
}

func parseHash(hashHex string) (common.Hash, error) {
	raw, err := hexutil.Decode(hashHex)
	if err != nil || len(raw) != common.HashLength {
		return common.Hash{}, fmt.Errorf("hash must be 32 bytes of 0x-prefixed hex")
	}
	return common.BytesToHash(raw), nil
}

func main() {
	kind := flag.String("kind", "kyc", "approval kind: kyc or project")
	id := flag.String("id", "", "uid for kyc, projectId for project")
	account := flag.String("account", "", "account the approval is bound to")
	key := flag.String("key", "", "authority private key (hex)")
	rawHash := flag.String("hash", "", "sign this 32-byte hash directly instead of building one")
	flag.Parse()

	var (
		out *approval
		err error
	)
	if *rawHash != "" {
		var hash common.Hash
		if hash, err = parseHash(*rawHash); err == nil {
			out, err = signHash(hash, *key)
		}
	} else {
		out, err = signApproval(*kind, *id, *account, *key)
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("hash:     ", out.Hash.Hex())
	fmt.Println("signature:", out.Signature)
}
