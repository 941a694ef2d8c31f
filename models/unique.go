package models

type (
	CollectionID uint32
	TokenID      uint32

	// CrossAccountID is either a substrate or an ethereum account, never both
	CrossAccountID struct {
		Substrate string `json:"Substrate,omitempty"`
		Ethereum  string `json:"Ethereum,omitempty"`
	}

	Property struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	TokenToMint struct {
		Owner      interface{} `json:"owner"` // string address or CrossAccountID
		Properties []Property  `json:"properties"`
	}
)
