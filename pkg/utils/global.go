package utils

//BallClass is the enum represents an object detected as the ball
const BallClass = 0

//PlayerClass is the enum represents an object detected as a field player
const PlayerClass = 1

//RefereeClass is the enum represents an object detected as a referee
const RefereeClass = 2

//GoalkeeperClass is the enum represents an object detected as a goalkeeper
const GoalkeeperClass = 3

//MinJerseyRatio is the minimal share of jersey-colored pixels inside a torso crop
//needed before the HSV classifier assigns the box to a team
const MinJerseyRatio = 0.08
