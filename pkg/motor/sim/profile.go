package sim

import (
	"math"
	"time"
)

// profile is a trapezoid velocity profile over a fixed distance. Motion
// starts at startSpeed, accelerates to peak, cruises and decelerates back
// to startSpeed at the end. Short moves never reach the requested speed
// and become triangles.
type profile struct {
	distance   float64
	startSpeed float64
	peakSpeed  float64
	accel      float64

	accelDist  float64
	cruiseDist float64
	accelTime  float64
	cruiseTime float64
}

func newProfile(distance, speed, startSpeed, accel float64) profile {
	p := profile{distance: distance, startSpeed: startSpeed, accel: accel}
	if speed <= startSpeed || accel <= 0 {
		if speed < startSpeed {
			speed = startSpeed
		}
		p.peakSpeed, p.accel = speed, 0
		p.cruiseDist = distance
		p.cruiseTime = distance / speed
		return p
	}
	p.peakSpeed = speed
	if full := (speed*speed - startSpeed*startSpeed) / (2 * accel); 2*full >= distance {
		p.peakSpeed = math.Sqrt(startSpeed*startSpeed + accel*distance)
	}
	p.accelDist = (p.peakSpeed*p.peakSpeed - startSpeed*startSpeed) / (2 * accel)
	p.cruiseDist = distance - 2*p.accelDist
	if p.cruiseDist < 0 {
		p.cruiseDist = 0
	}
	p.accelTime = (p.peakSpeed - startSpeed) / accel
	p.cruiseTime = p.cruiseDist / p.peakSpeed
	return p
}

func (p profile) totalSecs() float64 {
	return 2*p.accelTime + p.cruiseTime
}

func (p profile) duration() time.Duration {
	return secsToDuration(p.totalSecs())
}

// travelled estimates the distance covered after elapsed.
func (p profile) travelled(elapsed time.Duration) float64 {
	t := elapsed.Seconds()
	switch {
	case t <= 0:
		return 0
	case t < p.accelTime:
		return p.startSpeed*t + p.accel*t*t/2
	case t < p.accelTime+p.cruiseTime:
		return p.accelDist + p.peakSpeed*(t-p.accelTime)
	case t < p.totalSecs():
		tau := t - p.accelTime - p.cruiseTime
		s := p.accelDist + p.cruiseDist + p.peakSpeed*tau - p.accel*tau*tau/2
		return math.Min(s, p.distance)
	}
	return p.distance
}

// timeAt is the inverse of travelled.
func (p profile) timeAt(s float64) time.Duration {
	var t float64
	switch {
	case s <= 0:
		return 0
	case s < p.accelDist:
		v0 := p.startSpeed
		t = (math.Sqrt(v0*v0+2*p.accel*s) - v0) / p.accel
	case s < p.accelDist+p.cruiseDist:
		t = p.accelTime + (s-p.accelDist)/p.peakSpeed
	case s < p.distance:
		r := s - p.accelDist - p.cruiseDist
		disc := p.peakSpeed*p.peakSpeed - 2*p.accel*r
		if disc < 0 {
			disc = 0
		}
		t = p.accelTime + p.cruiseTime + (p.peakSpeed-math.Sqrt(disc))/p.accel
	default:
		t = p.totalSecs()
	}
	return secsToDuration(t)
}

func secsToDuration(secs float64) time.Duration {
	return time.Duration(math.Ceil(secs * float64(time.Second)))
}
