// Command maetool is the command-line front end for the weak-key lab: it
// generates deliberately weak (or deliberately strong) RSA and EC key
// material and runs the classical attacks against it, printing step counts
// and timings for comparison. All algorithmic logic lives in the library
// packages; this binary only parses flags and renders results.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/maelab/maetool/pkg/safety"
	"github.com/maelab/maetool/pkg/weakec"
	"github.com/maelab/maetool/pkg/weakrsa"
)

func main() {
	var (
		genWeakRSA   = flag.Bool("gen-weak-rsa", false, "Generate a Fermat-vulnerable RSA key")
		genStrongRSA = flag.Bool("gen-strong-rsa", false, "Generate an RSA key with separated primes")
		fermatN      = flag.String("fermat", "", "Factor the given modulus (decimal or 0x-hex)")
		fermatPEM    = flag.String("fermat-pem", "", "Factor the modulus of a public-key PEM file")
		genEC        = flag.Bool("gen-ec", false, "Generate a weak EC keypair on the toy curve")
		analyzeFile  = flag.String("analyze", "", "Run the EC attack triage on a JSON request file")

		bits       = flag.Int("bits", 16, "Prime size for weak RSA generation")
		closeness  = flag.Int("closeness", 64, "Maximum p-q delta for weak RSA generation")
		modBits    = flag.Int("modulus-bits", 2048, "Modulus size for strong RSA generation")
		safePrimes = flag.Bool("safe-primes", false, "Use safe primes (p = 2r+1) for strong RSA")
		minGapBits = flag.Int("min-gap-bits", 128, "Minimum |p-q| width in bits for strong RSA")
		maxSteps   = flag.Int("max-steps", 200000, "Fermat step budget")
		difficulty = flag.String("difficulty", "medium", "EC order band: easy, medium, or hard")
		prefPrime  = flag.Bool("prefer-prime", false, "Restrict the EC key to a prime-order subgroup")
	)
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	limits := safety.InteractiveLimits()

	switch {
	case *genWeakRSA:
		runGenWeakRSA(*bits, *closeness, *maxSteps, limits)
	case *genStrongRSA:
		runGenStrongRSA(*modBits, *safePrimes, *minGapBits)
	case *fermatN != "":
		n, err := parseModulus(*fermatN)
		if err != nil {
			log.WithError(err).Fatal("invalid modulus")
		}
		runFermat(n, *maxSteps, limits)
	case *fermatPEM != "":
		runFermatPEM(*fermatPEM, *maxSteps, limits)
	case *genEC:
		runGenEC(*difficulty, *prefPrime, limits)
	case *analyzeFile != "":
		runAnalyze(*analyzeFile, limits)
	default:
		fmt.Fprintln(os.Stderr, "Error: pick one of -gen-weak-rsa, -gen-strong-rsa, -fermat, -fermat-pem, -gen-ec, -analyze")
		flag.Usage()
		os.Exit(1)
	}
}

func parseModulus(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	return n, nil
}

func runGenWeakRSA(bits, closeness, maxSteps int, limits safety.Limits) {
	log.WithFields(log.Fields{"bits": bits, "closeness": closeness}).Info("generating weak RSA key")

	key, err := weakrsa.GenerateWeak(bits, closeness)
	if err != nil {
		log.WithError(err).Fatal("generation failed")
	}

	fmt.Printf("p = %s\nq = %s\nn = %s\ne = %s\nd = %s\ngap = %s\n",
		key.P, key.Q, key.N, key.E, key.D, key.Gap())

	pemText, err := key.EncodePublicPEM()
	if err != nil {
		log.WithError(err).Fatal("PEM encoding failed")
	}
	fmt.Print(pemText)

	// show how quickly the key falls
	runFermat(key.N, maxSteps, limits)
}

func runGenStrongRSA(modBits int, safePrimes bool, minGapBits int) {
	log.WithFields(log.Fields{
		"modulus_bits": modBits,
		"safe_primes":  safePrimes,
		"min_gap_bits": minGapBits,
	}).Info("generating strong RSA key")

	key, err := weakrsa.GenerateStrong(weakrsa.StrongConfig{
		ModulusBits: modBits,
		SafePrimes:  safePrimes,
		MinGapBits:  minGapBits,
	})
	if err != nil {
		log.WithError(err).Fatal("generation failed")
	}

	fmt.Printf("n bits = %d\ngap bits = %d\ne = %s\n", key.N.BitLen(), key.Gap().BitLen(), key.E)

	pubPEM, err := key.EncodePublicPEM()
	if err != nil {
		log.WithError(err).Fatal("PEM encoding failed")
	}
	privPEM, err := key.EncodePrivatePEM()
	if err != nil {
		log.WithError(err).Fatal("PEM encoding failed")
	}
	fmt.Print(pubPEM)
	fmt.Print(privPEM)
}

func runFermat(n *big.Int, maxSteps int, limits safety.Limits) {
	log.WithFields(log.Fields{"n": n.String(), "max_steps": maxSteps}).Info("running Fermat factorization")

	res, err := weakrsa.FermatFactor(n, maxSteps, limits)
	if err != nil {
		log.WithError(err).Fatal("refused")
	}
	if !res.Found {
		fmt.Printf("no factors within %d steps (%s); raise -max-steps on a lab machine\n",
			res.Steps, res.Elapsed)
		return
	}
	fmt.Printf("p = %s\nq = %s\nfound in %d steps, %s\n", res.P, res.Q, res.Steps, res.Elapsed)
}

func runFermatPEM(path string, maxSteps int, limits safety.Limits) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Fatal("reading PEM file")
	}
	pub, err := weakrsa.DecodePublicPEM(string(raw))
	if err != nil {
		log.WithError(err).Fatal("parsing PEM")
	}
	log.WithField("modulus_bits", pub.N.BitLen()).Info("parsed public key")
	runFermat(pub.N, maxSteps, limits)
}

func runGenEC(difficulty string, preferPrime bool, limits safety.Limits) {
	log.WithFields(log.Fields{"difficulty": difficulty, "prefer_prime": preferPrime}).Info("sampling weak EC key")

	cfg := weakec.DefaultGenConfig()
	cfg.Difficulty = difficulty
	cfg.PreferPrime = preferPrime
	cfg.Limits = limits

	key, err := weakec.GenerateWeakKey(weakec.DefaultToyCurve(), cfg)
	if err != nil {
		log.WithError(err).Fatal("sampling failed")
	}

	out := map[string]interface{}{
		"p":             key.Curve.P.String(),
		"a":             key.Curve.A.String(),
		"b":             key.Curve.B.String(),
		"gx":            key.G.X.String(),
		"gy":            key.G.Y.String(),
		"r":             key.Order,
		"r_factors":     key.OrderFactors,
		"d":             key.D.String(),
		"qx":            key.Q.X.String(),
		"qy":            key.Q.Y.String(),
		"attack_hint":   key.AttackHint,
		"est_ops_sqrt_r": key.EstOps,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.WithError(err).Fatal("encoding result")
	}
}

func runAnalyze(path string, limits safety.Limits) {
	req, err := weakec.ParseAnalysisRequest(path)
	if err != nil {
		log.WithError(err).Fatal("parsing request")
	}

	log.WithFields(log.Fields{
		"p":          req.P.String(),
		"dlog_bound": req.DlogBound,
	}).Info("running attack triage")

	report, err := weakec.NewAnalyzer().WithLimits(limits).
		Analyze(req.Curve(), req.G(), req.Q(), req.OrderSearchBound, req.DlogBound)
	if err != nil {
		log.WithError(err).Fatal("refused")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.WithError(err).Fatal("encoding report")
	}
}
