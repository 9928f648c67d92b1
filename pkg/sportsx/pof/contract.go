package pof

import "context"

// ContractClient is the points program as seen by another program. Every
// call carries the caller program's identity, which is checked against the
// allowlist.
type ContractClient struct {
	service *Service
	caller  string
}

// ContractClient returns a points client bound to a caller program identity.
func (s *Service) ContractClient(caller string) *ContractClient {
	return &ContractClient{
		service: s,
		caller:  caller,
	}
}

func (c *ContractClient) UpdatePoints(ctx context.Context, wallet string, delta int64) error {
	return c.service.UpdatePoints(ctx, c.caller, wallet, delta)
}
