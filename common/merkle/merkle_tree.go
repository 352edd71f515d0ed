package merkle

import (
	"errors"
	"fmt"

	"github.com/LemoFoundationLtd/lemochain-nft/common"
	"github.com/LemoFoundationLtd/lemochain-nft/common/crypto"
)

var ErrEmptyNodes = errors.New("src nodes can't be empty")

// NodeTypeFlag tells which side a proof node sits on
type NodeTypeFlag int

const (
	LeftNode NodeTypeFlag = iota
	RightNode
	RootNode
)

// MerkleNode is one step of a proof
type MerkleNode struct {
	Hash     common.Hash
	NodeType NodeTypeFlag
}

// MerkleTree pairs the nodes in a flat list. The parent of node n is at index len(leaves)+n/2
type MerkleTree struct {
	leafHashes []common.Hash
	nodes      []common.Hash
	offset     int // next node whose parent is not computed yet
}

func New(leafHashes []common.Hash) *MerkleTree {
	return &MerkleTree{
		leafHashes: leafHashes,
	}
}

// Root returns the root hash, or an empty hash if there is no leaf
func (m *MerkleTree) Root() common.Hash {
	if len(m.leafHashes) == 0 {
		return common.Hash{}
	}
	if m.nodes == nil {
		m.calculateNodes()
	}
	return m.nodes[len(m.nodes)-1]
}

// HashNodes returns all node hashes from the leaves up to the root
func (m *MerkleTree) HashNodes() []common.Hash {
	if m.nodes == nil {
		m.calculateNodes()
	}
	return m.nodes
}

func (m *MerkleTree) calculateNodes() {
	m.nodes = make([]common.Hash, 0, len(m.leafHashes)*2)
	m.nodes = append(m.nodes, m.leafHashes...)
	for ; m.offset < len(m.nodes)-1; m.offset += 2 {
		m.nodes = append(m.nodes, hashPair(m.nodes[m.offset], m.nodes[m.offset+1]))
	}
}

func hashPair(left, right common.Hash) common.Hash {
	return crypto.Keccak256Hash(left[:], right[:])
}

// FindSiblingNodes builds the proof of src. The last node of the proof is the root
func FindSiblingNodes(src common.Hash, srcNodes []common.Hash) ([]MerkleNode, error) {
	if len(srcNodes) == 0 {
		return nil, ErrEmptyNodes
	}
	index := -1
	for i, node := range srcNodes {
		if node == src {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("can't find hash:%s in src nodes", src.Hex())
	}
	leafCount := (len(srcNodes) + 1) / 2
	result := make([]MerkleNode, 0)
	for n := index; ; n = leafCount + n/2 {
		if n == len(srcNodes)-1 {
			result = append(result, MerkleNode{Hash: srcNodes[n], NodeType: RootNode})
			return result, nil
		} else if n%2 == 1 {
			result = append(result, MerkleNode{Hash: srcNodes[n-1], NodeType: LeftNode})
		} else {
			result = append(result, MerkleNode{Hash: srcNodes[n+1], NodeType: RightNode})
		}
	}
}

// VerifyProof folds the proof over hash and compares the result with the root in the proof
func VerifyProof(hash common.Hash, proof []MerkleNode) bool {
	if len(proof) == 0 {
		return false
	}
	for _, item := range proof {
		switch item.NodeType {
		case LeftNode:
			hash = hashPair(item.Hash, hash)
		case RightNode:
			hash = hashPair(hash, item.Hash)
		case RootNode:
			return hash == item.Hash
		}
	}
	return false
}
