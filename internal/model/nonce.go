package model

type GetNonceRequest struct {
	Address string `json:"address"`
}

type GetNonceResponse struct {
	Success        bool   `json:"success"`
	Nonce          string `json:"nonce"`
	Domain         string `json:"domain"`
	ChainID        int64  `json:"chainId"`
	IssuedAt       string `json:"issuedAt"`
	ExpirationTime string `json:"expirationTime"`
}
