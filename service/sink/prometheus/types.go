package promsink

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

type service struct {
	registry *prometheus.Registry
	pusher   *push.Pusher

	cpuReservation    *prometheus.GaugeVec
	memoryReservation *prometheus.GaugeVec
	cpuUtilization    *prometheus.GaugeVec
	memoryUtilization *prometheus.GaugeVec
	hourlyCost        *prometheus.GaugeVec
	hourlyWaste       *prometheus.GaugeVec
	serviceInfo       *prometheus.GaugeVec
	hourlyVCPUCost    *prometheus.GaugeVec
	lastRun           *prometheus.GaugeVec
}
