package service

import (
	"context"

	"taxcredit/internal/model"
	"taxcredit/internal/repository"

	"golang.org/x/sync/errgroup"
)

const statisticsTopN = 5

type StatisticsService interface {
	GetStatistics(ctx context.Context, taxYear int) (model.StatisticsResponse, error)
}

type statisticsService struct {
	repo repository.StatisticsRepository
}

func NewStatisticsService(repo repository.StatisticsRepository) StatisticsService {
	return &statisticsService{repo: repo}
}

// GetStatistics aggregates the latest assessment of every company for the year.
func (s *statisticsService) GetStatistics(ctx context.Context, taxYear int) (model.StatisticsResponse, error) {
	if err := ValidateTaxYear(taxYear); err != nil {
		return model.StatisticsResponse{}, err
	}
	response := model.StatisticsResponse{TaxYear: taxYear}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		response.CompaniesAssessed, response.TotalCredit, err = s.repo.GetYearTotals(gctx, taxYear)
		return err
	})
	g.Go(func() error {
		var err error
		response.ByCategory, err = s.repo.GetCategoryTotals(gctx, taxYear)
		return err
	})
	g.Go(func() error {
		var err error
		response.TopRules, err = s.repo.GetTopRules(gctx, taxYear, statisticsTopN)
		return err
	})
	g.Go(func() error {
		var err error
		response.TopCompanies, err = s.repo.GetTopCompanies(gctx, taxYear, statisticsTopN)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.StatisticsResponse{}, err
	}

	if response.ByCategory == nil {
		response.ByCategory = []model.CategoryTotal{}
	}
	if response.TopRules == nil {
		response.TopRules = []model.RuleRanking{}
	}
	if response.TopCompanies == nil {
		response.TopCompanies = []model.CompanyRanking{}
	}
	return response, nil
}
