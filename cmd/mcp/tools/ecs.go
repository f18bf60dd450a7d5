package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elC0mpa/ecs-chargeback/cmd/mcp/response"
	"github.com/elC0mpa/ecs-chargeback/model"
	svc "github.com/elC0mpa/ecs-chargeback/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ReportEngine computes chargeback reports on demand
type ReportEngine interface {
	ListClusters(ctx context.Context) ([]string, error)
	Report(ctx context.Context, cluster string) (*model.ClusterReport, error)
}

// RegisterECSTools registers all chargeback tools with the MCP server
func RegisterECSTools(s *server.MCPServer, engine ReportEngine, identity svc.IdentityService) {
	// Account info
	s.AddTool(
		mcp.NewTool("ecs_get_account_info",
			mcp.WithDescription("Get AWS account identity information for the account being charged back"),
		),
		makeAccountInfoHandler(identity),
	)

	// Clusters
	s.AddTool(
		mcp.NewTool("ecs_list_clusters",
			mcp.WithDescription("List the ECS clusters of the configured region"),
		),
		makeListClustersHandler(engine),
	)

	// Cluster costs
	s.AddTool(
		mcp.NewTool("ecs_get_cluster_costs",
			mcp.WithDescription("Compute the hourly cost and waste of every service of an ECS cluster, with the per vCPU rate it was derived from"),
			mcp.WithString("cluster",
				mcp.Required(),
				mcp.Description("Name of the ECS cluster"),
			),
		),
		makeClusterCostsHandler(engine),
	)

	// Service cost
	s.AddTool(
		mcp.NewTool("ecs_get_service_cost",
			mcp.WithDescription("Compute the hourly cost and waste of a single ECS service"),
			mcp.WithString("cluster",
				mcp.Required(),
				mcp.Description("Name of the ECS cluster"),
			),
			mcp.WithString("service",
				mcp.Required(),
				mcp.Description("Name of the ECS service"),
			),
		),
		makeServiceCostHandler(engine),
	)
}

func makeAccountInfoHandler(identity svc.IdentityService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		info, err := identity.GetAccountInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get account info: %v", err)), nil
		}

		return jsonResult(response.ConvertAccountInfo(info))
	}
}

func makeListClustersHandler(engine ReportEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		clusters, err := engine.ListClusters(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list clusters: %v", err)), nil
		}

		return jsonResult(response.ConvertClusterList(clusters))
	}
}

func makeClusterCostsHandler(engine ReportEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cluster, err := request.RequireString("cluster")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		report, err := engine.Report(ctx, cluster)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to compute costs of %s: %v", cluster, err)), nil
		}

		return jsonResult(response.ConvertClusterReport(report))
	}
}

func makeServiceCostHandler(engine ReportEngine) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cluster, err := request.RequireString("cluster")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		service, err := request.RequireString("service")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		report, err := engine.Report(ctx, cluster)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to compute costs of %s: %v", cluster, err)), nil
		}

		cost, ok := response.FindService(report, service)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("Service %s not found in cluster %s", service, cluster)), nil
		}

		return jsonResult(cost)
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
