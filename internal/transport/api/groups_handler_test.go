package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/fsdevblog/groupbuy/internal/domain"
	"github.com/fsdevblog/groupbuy/internal/service"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type GroupsHandlerTestSuite struct {
	handlerSuite
}

func TestGroupsHandlerSuite(t *testing.T) {
	suite.Run(t, new(GroupsHandlerTestSuite))
}

func (s *GroupsHandlerTestSuite) TestShow() {
	s.groupSvs.EXPECT().Get(gomock.Any(), int64(3)).Return(testGroup(domain.GroupStatusFunding), nil)

	res, body := s.do(apiRequest{method: http.MethodGet, url: "/groups/3", token: s.sellerToken})
	s.Require().Equal(http.StatusOK, res.StatusCode)
	var group GroupResponse
	s.decode(body, &group)
	s.EqualValues(100, group.TargetQuantity)
	s.Len(group.Participants, 1)
}

func (s *GroupsHandlerTestSuite) TestSetLogistics() {
	inTransit := testGroup(domain.GroupStatusPendingDelivery)
	inTransit.LogisticsStatus = domain.LogisticsStatusInTransit
	args := func(status domain.LogisticsStatusType) service.SetLogisticsArgs {
		return service.SetLogisticsArgs{GroupID: 3, ActorID: sellerID, Status: status}
	}

	gomock.InOrder(
		s.logisticsSvs.EXPECT().SetLogistics(gomock.Any(), args(domain.LogisticsStatusInTransit)).
			Return(inTransit, nil),
		s.logisticsSvs.EXPECT().SetLogistics(gomock.Any(), args(domain.LogisticsStatusInTransit)).
			Return(inTransit, fmt.Errorf("setting logistics: %w", domain.ErrAlreadyProcessed)),
	)
	s.logisticsSvs.EXPECT().SetLogistics(gomock.Any(), args(domain.LogisticsStatusAtPickup)).
		Return(nil, fmt.Errorf("setting logistics: %w", domain.ErrInvalidTransition))

	cases := []struct {
		name       string
		token      string
		body       string
		wantStatus int
	}{
		{
			name:       "all ok",
			token:      s.sellerToken,
			body:       `{"status":"in_transit"}`,
			wantStatus: http.StatusOK,
		}, {
			name:       "same status again",
			token:      s.sellerToken,
			body:       `{"status":"in_transit"}`,
			wantStatus: http.StatusOK,
		}, {
			name:       "group is not dispatched",
			token:      s.sellerToken,
			body:       `{"status":"at_pickup"}`,
			wantStatus: http.StatusConflict,
		}, {
			name:       "unknown status",
			token:      s.sellerToken,
			body:       `{"status":"delivered"}`,
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "buyer",
			token:      s.buyerToken,
			body:       `{"status":"packing"}`,
			wantStatus: http.StatusForbidden,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, body := s.do(apiRequest{method: http.MethodPost, url: "/groups/3/logistics", token: t.token, body: t.body})
			s.Equal(t.wantStatus, res.StatusCode, string(body))
			if t.wantStatus == http.StatusOK {
				var group GroupResponse
				s.decode(body, &group)
				s.Equal(domain.LogisticsStatusInTransit, group.LogisticsStatus)
			}
		})
	}
}
