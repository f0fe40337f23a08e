package audio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = 44100

// paramCount is the number of fields in a settings string.
const paramCount = 24

// WaveType is the oscillator shape of a cue.
type WaveType int

const (
	WaveSquare WaveType = iota
	WaveSawtooth
	WaveSine
	WaveNoise
)

func (w WaveType) String() string {
	switch w {
	case WaveSquare:
		return "Square"
	case WaveSawtooth:
		return "Sawtooth"
	case WaveSine:
		return "Sine"
	case WaveNoise:
		return "Noise"
	default:
		return "Unknown"
	}
}

// Params are the sfxr synthesis parameters. All values are normalized, most
// to [0, 1] and the slides to [-1, 1].
type Params struct {
	Wave WaveType

	AttackTime   float64
	SustainTime  float64
	SustainPunch float64
	DecayTime    float64

	StartFrequency float64
	MinFrequency   float64
	Slide          float64
	DeltaSlide     float64

	VibratoDepth float64
	VibratoSpeed float64

	ChangeAmount float64
	ChangeSpeed  float64

	SquareDuty float64
	DutySweep  float64

	RepeatSpeed  float64
	PhaserOffset float64
	PhaserSweep  float64

	LPCutoff      float64
	LPCutoffSweep float64
	LPResonance   float64
	HPCutoff      float64
	HPCutoffSweep float64

	Volume float64
}

// ParseParams reads a comma-separated settings string as produced by the
// sfxr family of editors. Empty fields are zero.
func ParseParams(s string) (Params, error) {
	fields := strings.Split(s, ",")
	if len(fields) != paramCount {
		return Params{}, fmt.Errorf("sfxr settings: want %d fields, got %d", paramCount, len(fields))
	}

	values := make([]float64, paramCount)
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Params{}, fmt.Errorf("sfxr settings field %d: %w", i, err)
		}
		values[i] = v
	}

	p := Params{
		Wave:           WaveType(values[0]),
		AttackTime:     values[1],
		SustainTime:    values[2],
		SustainPunch:   values[3],
		DecayTime:      values[4],
		StartFrequency: values[5],
		MinFrequency:   values[6],
		Slide:          values[7],
		DeltaSlide:     values[8],
		VibratoDepth:   values[9],
		VibratoSpeed:   values[10],
		ChangeAmount:   values[11],
		ChangeSpeed:    values[12],
		SquareDuty:     values[13],
		DutySweep:      values[14],
		RepeatSpeed:    values[15],
		PhaserOffset:   values[16],
		PhaserSweep:    values[17],
		LPCutoff:       values[18],
		LPCutoffSweep:  values[19],
		LPResonance:    values[20],
		HPCutoff:       values[21],
		HPCutoffSweep:  values[22],
		Volume:         values[23],
	}
	if p.Wave < WaveSquare || p.Wave > WaveNoise {
		return Params{}, fmt.Errorf("sfxr settings: unknown wave type %d", p.Wave)
	}

	// Very short envelopes click; stretch them to at least 0.18.
	if p.SustainTime < 0.01 {
		p.SustainTime = 0.01
	}
	if total := p.AttackTime + p.SustainTime + p.DecayTime; total < 0.18 {
		k := 0.18 / total
		p.AttackTime *= k
		p.SustainTime *= k
		p.DecayTime *= k
	}
	return p, nil
}

// Render synthesizes p into mono samples in [-1, 1].
func Render(p Params) []float64 {
	v := newVoice(p)
	out := make([]float64, 0, v.length())
	for {
		s, ok := v.next()
		if !ok {
			return out
		}
		out = append(out, s)
	}
}

// voice holds the per-sample synthesis state of one cue.
type voice struct {
	p Params

	// oscillator
	period, maxPeriod     float64
	slide, deltaSlide     float64
	changeAmount          float64
	changeTime, changeLim float64
	duty, dutySweep       float64
	phase                 float64
	vibratoPhase          float64
	repeatTime, repeatLim int

	// envelope
	envLength  [3]float64
	envStage   int
	envTime    float64
	finished   bool
	punch      float64
	masterGain float64

	// filters
	filtersOn                bool
	lpOn                     bool
	lpCutoff, lpDelta        float64
	lpDamping                float64
	lpPos, lpDeltaPos, lpOld float64
	hpCutoff, hpDelta        float64
	hpPos                    float64

	// phaser
	phaserOn     bool
	phaserOffset float64
	phaserDelta  float64
	phaserInt    int
	phaserPos    int
	phaserBuf    [1024]float64

	noise [32]float64
	seed  uint32
}

func newVoice(p Params) *voice {
	v := &voice{p: p, seed: 12345}
	v.restart()

	v.envLength = [3]float64{
		p.AttackTime * p.AttackTime * 100000,
		p.SustainTime * p.SustainTime * 100000,
		p.DecayTime*p.DecayTime*100000 + 10,
	}
	v.punch = p.SustainPunch
	v.masterGain = p.Volume * p.Volume

	v.filtersOn = p.LPCutoff != 1 || p.HPCutoff != 0
	v.lpOn = p.LPCutoff != 1
	v.lpCutoff = p.LPCutoff * p.LPCutoff * p.LPCutoff * 0.1
	v.lpDelta = 1 + p.LPCutoffSweep*0.0001
	v.lpDamping = 1 - math.Min(0.8, 5/(1+p.LPResonance*p.LPResonance*20)*(0.01+v.lpCutoff))
	v.hpCutoff = p.HPCutoff * p.HPCutoff * 0.1
	v.hpDelta = 1 + p.HPCutoffSweep*0.0003

	v.phaserOn = p.PhaserOffset != 0 || p.PhaserSweep != 0
	v.phaserOffset = p.PhaserOffset * p.PhaserOffset * 1020
	if p.PhaserOffset < 0 {
		v.phaserOffset = -v.phaserOffset
	}
	v.phaserDelta = p.PhaserSweep * p.PhaserSweep * p.PhaserSweep * 0.2

	if p.RepeatSpeed != 0 {
		v.repeatLim = int((1-p.RepeatSpeed)*(1-p.RepeatSpeed)*20000) + 32
	}
	for i := range v.noise {
		v.noise[i] = v.random()
	}
	return v
}

// restart resets the oscillator. The repeat effect calls it mid-cue.
func (v *voice) restart() {
	p := v.p
	v.period = 100 / (p.StartFrequency*p.StartFrequency + 0.001)
	v.maxPeriod = 100 / (p.MinFrequency*p.MinFrequency + 0.001)
	v.slide = 1 - p.Slide*p.Slide*p.Slide*0.01
	v.deltaSlide = -p.DeltaSlide * p.DeltaSlide * p.DeltaSlide * 0.000001

	if p.Wave == WaveSquare {
		v.duty = 0.5 - p.SquareDuty/2
		v.dutySweep = -p.DutySweep * 0.00005
	}

	if p.ChangeAmount > 0 {
		v.changeAmount = 1 - p.ChangeAmount*p.ChangeAmount*0.9
	} else {
		v.changeAmount = 1 + p.ChangeAmount*p.ChangeAmount*10
	}
	v.changeTime = 0
	if p.ChangeSpeed == 1 {
		v.changeLim = 0
	} else {
		v.changeLim = (1-p.ChangeSpeed)*(1-p.ChangeSpeed)*20000 + 32
	}
}

// length is the envelope length in samples, an upper bound on the output.
func (v *voice) length() int {
	return int(v.envLength[0] + v.envLength[1] + v.envLength[2])
}

func (v *voice) random() float64 {
	v.seed = v.seed*1103515245 + 12345
	return float64(v.seed)/float64(1<<31) - 1
}

// next produces one sample. It reports false once the cue has ended.
func (v *voice) next() (float64, bool) {
	if v.finished {
		return 0, false
	}

	if v.repeatLim != 0 {
		v.repeatTime++
		if v.repeatTime >= v.repeatLim {
			v.repeatTime = 0
			v.restart()
		}
	}
	if v.changeLim != 0 {
		v.changeTime++
		if v.changeTime >= v.changeLim {
			v.changeLim = 0
			v.period *= v.changeAmount
		}
	}

	v.slide += v.deltaSlide
	v.period *= v.slide
	if v.period > v.maxPeriod {
		v.period = v.maxPeriod
		if v.p.MinFrequency > 0 {
			v.finished = true
		}
	}

	period := v.period
	if v.p.VibratoDepth > 0 {
		v.vibratoPhase += v.p.VibratoSpeed * v.p.VibratoSpeed * 0.01
		period *= 1 + math.Sin(v.vibratoPhase)*v.p.VibratoDepth/2
	}
	period = math.Max(8, math.Trunc(period))

	if v.p.Wave == WaveSquare {
		v.duty = math.Max(0, math.Min(0.5, v.duty+v.dutySweep))
	}

	gain := v.envelope()

	if v.phaserOn {
		v.phaserOffset += v.phaserDelta
		v.phaserInt = int(math.Min(1023, math.Abs(v.phaserOffset)))
	}
	if v.filtersOn && v.hpDelta != 1 {
		v.hpCutoff = math.Max(0.00001, math.Min(0.1, v.hpCutoff*v.hpDelta))
	}

	// 8x oversampling
	sum := 0.0
	for j := 0; j < 8; j++ {
		sum += v.oversample(period)
	}
	s := sum * 0.125 * gain * v.masterGain
	return math.Max(-1, math.Min(1, s)), true
}

// envelope advances the attack/sustain/decay envelope and returns its gain.
func (v *voice) envelope() float64 {
	v.envTime++
	if v.envStage < 3 && v.envTime > v.envLength[v.envStage] {
		v.envTime = 0
		v.envStage++
	}

	switch v.envStage {
	case 0:
		return v.envTime / v.envLength[0]
	case 1:
		return 1 + (1-v.envTime/v.envLength[1])*2*v.punch
	case 2:
		return 1 - v.envTime/v.envLength[2]
	}
	v.finished = true
	return 0
}

func (v *voice) oversample(period float64) float64 {
	v.phase++
	if v.phase >= period {
		v.phase = math.Mod(v.phase, period)
		if v.p.Wave == WaveNoise {
			for i := range v.noise {
				v.noise[i] = v.random()
			}
		}
	}

	pos := v.phase / period
	var s float64
	switch v.p.Wave {
	case WaveSquare:
		if pos < v.duty {
			s = 0.5
		} else {
			s = -0.5
		}
	case WaveSawtooth:
		s = 1 - pos*2
	case WaveSine:
		s = fastSin(pos)
	case WaveNoise:
		s = v.noise[int(math.Abs(pos*32))%32]
	}

	if v.filtersOn {
		v.lpOld = v.lpPos
		v.lpCutoff = math.Max(0, math.Min(0.1, v.lpCutoff*v.lpDelta))
		if v.lpOn {
			v.lpDeltaPos += (s - v.lpPos) * v.lpCutoff
			v.lpDeltaPos *= v.lpDamping
		} else {
			v.lpPos = s
			v.lpDeltaPos = 0
		}
		v.lpPos += v.lpDeltaPos

		v.hpPos += v.lpPos - v.lpOld
		v.hpPos *= 1 - v.hpCutoff
		s = v.hpPos
	}

	if v.phaserOn {
		v.phaserBuf[v.phaserPos&1023] = s
		s += v.phaserBuf[(v.phaserPos-v.phaserInt+1024)&1023]
		v.phaserPos++
	}
	return s
}

// fastSin is the parabolic sine approximation sfxr uses, for pos in [0, 1).
func fastSin(pos float64) float64 {
	x := pos * 2 * math.Pi
	if pos > 0.5 {
		x = (pos - 1) * 2 * math.Pi
	}
	var s float64
	if x < 0 {
		s = 1.27323954*x + 0.405284735*x*x
	} else {
		s = 1.27323954*x - 0.405284735*x*x
	}
	if s < 0 {
		return 0.225*(s*-s-s) + s
	}
	return 0.225*(s*s-s) + s
}
