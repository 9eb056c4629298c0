// Package notify surfaces submission results as desktop notifications
// by shelling out to notify-send. The executor is injectable for tests.
package notify
