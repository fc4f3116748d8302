package mock

import (
	"context"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
)

var _ helpdesk.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of helpdesk.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}

var _ helpdesk.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of helpdesk.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
